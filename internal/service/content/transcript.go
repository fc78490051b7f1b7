package content

import (
	"context"
	"strings"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
)

const (
	noteStart = "start note"
	noteStop  = "stop and save"

	// DefaultTermCategory is used when neither the term nor the transcript names one.
	DefaultTermCategory = "general"
)

// Segment is one chunk of a speech-to-text transcript.
type Segment struct {
	Text string `json:"text"`
}

// TranscriptInput is the dictation payload accepted by term creation.
type TranscriptInput struct {
	Segments  []Segment         `json:"segments"`
	SessionID string            `json:"session_id"`
	Category  string            `json:"category,omitempty"`
	TermType  finmentor.WebType `json:"termType,omitempty"`
}

// TranscriptResult lists the created terms and the notes that could not be parsed.
type TranscriptResult struct {
	Terms   []finmentor.Term
	Skipped []string
}

// CreateTermsFromTranscript extracts "<term>: <definition>" notes delimited by
// the spoken markers and creates one term per note.
func (s *service) CreateTermsFromTranscript(ctx context.Context, in TranscriptInput) (TranscriptResult, error) {
	termType := in.TermType
	if termType == "" {
		termType = finmentor.WebTypeWeb2
	}
	if !termType.Valid() {
		return TranscriptResult{}, errs.Invalidf(`Invalid web type. Must be "web2" or "web3"`)
	}
	notes, skipped := ExtractNotes(in.Segments)
	res := TranscriptResult{Terms: []finmentor.Term{}, Skipped: skipped}
	var pending []finmentor.Term
	for _, n := range notes {
		t, ok := parseNote(n)
		if !ok {
			res.Skipped = append(res.Skipped, n)
			continue
		}
		t.Category = in.Category
		t.TermType = termType
		pending = append(pending, t)
	}
	if len(pending) == 0 {
		return res, errs.Invalidf("no notes found in transcript segments")
	}
	for _, t := range pending {
		created, err := s.CreateTerm(ctx, t)
		if err != nil {
			return res, err
		}
		res.Terms = append(res.Terms, created)
	}
	return res, nil
}

// ExtractNotes returns the text found between start and stop markers, in
// order. A note may span several segments. An unterminated trailing note is
// returned in skipped.
func ExtractNotes(segments []Segment) (notes, skipped []string) {
	var (
		open bool
		buf  strings.Builder
	)
	for _, seg := range segments {
		text := seg.Text
		for text != "" {
			if !open {
				i := indexFold(text, noteStart)
				if i < 0 {
					break
				}
				open = true
				buf.Reset()
				text = text[i+len(noteStart):]
				continue
			}
			i := indexFold(text, noteStop)
			if i < 0 {
				appendWord(&buf, text)
				break
			}
			appendWord(&buf, text[:i])
			if n := strings.TrimSpace(buf.String()); n != "" {
				notes = append(notes, n)
			}
			open = false
			text = text[i+len(noteStop):]
		}
	}
	if open {
		if n := strings.TrimSpace(buf.String()); n != "" {
			skipped = append(skipped, n)
		}
	}
	return notes, skipped
}

func appendWord(b *strings.Builder, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func parseNote(note string) (finmentor.Term, bool) {
	name, def, ok := strings.Cut(note, ":")
	if !ok {
		return finmentor.Term{}, false
	}
	name = strings.Trim(strings.TrimSpace(name), `"'.,`)
	def = strings.TrimSpace(def)
	if name == "" || def == "" {
		return finmentor.Term{}, false
	}
	return finmentor.Term{
		Term:             name,
		ShortDescription: firstSentence(def),
		LongDescription:  def,
	}, true
}

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return strings.TrimSpace(s[:i+1])
	}
	return s
}
