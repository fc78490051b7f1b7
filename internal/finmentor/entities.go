// Package finmentor holds the domain records served by the FinMentor API.
// JSON field names are part of the public contract and match the mobile client.
package finmentor

import (
	"slices"
	"time"
)

// WebType classifies content as traditional finance or crypto/web3.
type WebType string

const (
	// WebTypeWeb2 covers traditional personal finance topics.
	WebTypeWeb2 WebType = "web2"
	// WebTypeWeb3 covers blockchain, crypto and DeFi topics.
	WebTypeWeb3 WebType = "web3"
)

// Valid reports whether w is one of the known web types.
func (w WebType) Valid() bool { return w == WebTypeWeb2 || w == WebTypeWeb3 }

const (
	// MinDifficulty and MaxDifficulty bound Module.Difficulty.
	MinDifficulty = 1
	MaxDifficulty = 5
	// MaxLevel bounds the web2/web3 proficiency levels of a profile.
	MaxLevel = 5
	// LessonsPerModule is the fixed lesson count used to compute completion.
	LessonsPerModule = 2
	// QuizzesPerModule is the quiz count that, with all lessons, marks a module complete.
	QuizzesPerModule = 1
)

// UserProfile captures a learner's proficiency and interests.
type UserProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	LevelWeb2   int       `json:"nivelWeb2"`
	LevelWeb3   int       `json:"nivelWeb3"`
	Interests   []string  `json:"areasInteres"`
	TermHistory []string  `json:"historialTerminos"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	p.Interests = cloneStrings(p.Interests)
	p.TermHistory = cloneStrings(p.TermHistory)
	return p
}

// Resource is an extra link attached to a lesson (video, template, calculator...).
type Resource struct {
	Kind string `json:"tipo"`
	URL  string `json:"url"`
}

// Lesson is embedded in a Module and is not addressable on its own.
type Lesson struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"contenido"`
	EstimatedMinutes int        `json:"duracionEstimada"`
	Format           string     `json:"formato"`
	ExtraResources   []Resource `json:"recursosAdicionales"`
}

// Question is a single multiple-choice question; CorrectAnswer indexes Options.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"pregunta"`
	Options       []string `json:"opciones"`
	CorrectAnswer int      `json:"respuestaCorrecta"`
}

// Quiz is embedded in a Module.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  int        `json:"dificultad"`
	TotalPoints int        `json:"puntosTotales"`
	Questions   []Question `json:"preguntas"`
}

// Module bundles lessons and quizzes around a financial topic.
type Module struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	WebType       WebType   `json:"tipoWeb"`
	Difficulty    int       `json:"nivelDificultad"`
	Prerequisites []string  `json:"prerequisitos"`
	CreatedAt     time.Time `json:"fechaCreacion"`
	UpdatedAt     time.Time `json:"ultimaActualizacion"`
	Lessons       []Lesson  `json:"lecciones"`
	Quizzes       []Quiz    `json:"quizzes"`
}

// Clone returns a deep copy of m.
func (m Module) Clone() Module {
	m.Prerequisites = cloneStrings(m.Prerequisites)
	lessons := make([]Lesson, len(m.Lessons))
	for i, l := range m.Lessons {
		l.ExtraResources = slices.Clone(l.ExtraResources)
		if l.ExtraResources == nil {
			l.ExtraResources = []Resource{}
		}
		lessons[i] = l
	}
	m.Lessons = lessons
	quizzes := make([]Quiz, len(m.Quizzes))
	for i, q := range m.Quizzes {
		questions := make([]Question, len(q.Questions))
		for j, qq := range q.Questions {
			qq.Options = cloneStrings(qq.Options)
			questions[j] = qq
		}
		q.Questions = questions
		quizzes[i] = q
	}
	m.Quizzes = quizzes
	return m
}

// Term is a standalone glossary entry.
type Term struct {
	ID               string   `json:"id"`
	Term             string   `json:"term"`
	Image            string   `json:"image"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Category         string   `json:"category"`
	TermType         WebType  `json:"termType"`
	RelatedTerms     []string `json:"relationsBetweenTerms"`
	Examples         []string `json:"examples"`
}

// Clone returns a copy that shares no slices with t.
func (t Term) Clone() Term {
	t.RelatedTerms = cloneStrings(t.RelatedTerms)
	t.Examples = cloneStrings(t.Examples)
	return t
}

// Progress is the per-user, per-module completion record.
type Progress struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	ModuleID         string    `json:"moduleId"`
	PercentComplete  int       `json:"porcentajeCompletado"`
	LastAccess       time.Time `json:"ultimoAcceso"`
	CompletedLessons []string  `json:"leccionesCompletadas"`
	CompletedQuizzes []string  `json:"quizzesCompletados"`
	TotalPoints      int       `json:"puntosTotales"`
}

// Clone returns a copy that shares no slices with p.
func (p Progress) Clone() Progress {
	p.CompletedLessons = cloneStrings(p.CompletedLessons)
	p.CompletedQuizzes = cloneStrings(p.CompletedQuizzes)
	return p
}

// CertificateAttributes is the on-token metadata of a certificate.
type CertificateAttributes struct {
	Title  string   `json:"title"`
	Score  int      `json:"score"`
	Issuer string   `json:"issuer"`
	Skills []string `json:"skills"`
}

// Certificate records an NFT credential tied to a wallet and a completed module.
type Certificate struct {
	TokenID         string                `json:"tokenId"`
	WalletAddress   string                `json:"walletAddress"`
	ModuleID        string                `json:"moduleId"`
	UserID          string                `json:"userId"`
	MetadataURI     string                `json:"metadataURI"`
	TransactionHash string                `json:"transactionHash"`
	IssuedAt        time.Time             `json:"fechaEmision"`
	Level           int                   `json:"nivel"`
	Attributes      CertificateAttributes `json:"atributos"`
}

// Clone returns a copy that shares no slices with c.
func (c Certificate) Clone() Certificate {
	c.Attributes.Skills = cloneStrings(c.Attributes.Skills)
	return c
}

// cloneStrings never returns nil so lists always encode as [].
func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
