package v1

import (
	"time"

	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/service/content"
)

type postProfileRequest struct {
	UserID      string   `json:"userId"`
	LevelWeb2   int      `json:"nivelWeb2"`
	LevelWeb3   int      `json:"nivelWeb3"`
	Interests   []string `json:"areasInteres"`
	TermHistory []string `json:"historialTerminos"`
}

type putProfileRequest struct {
	UserID      *string  `json:"userId"`
	LevelWeb2   *int     `json:"nivelWeb2"`
	LevelWeb3   *int     `json:"nivelWeb3"`
	Interests   []string `json:"areasInteres"`
	TermHistory []string `json:"historialTerminos"`
}

type postModuleRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	WebType       finmentor.WebType  `json:"tipoWeb"`
	Difficulty    int                `json:"nivelDificultad"`
	Prerequisites []string           `json:"prerequisitos"`
	Lessons       []finmentor.Lesson `json:"lecciones"`
	Quizzes       []finmentor.Quiz   `json:"quizzes"`
}

// postTermRequest accepts either a term object or a dictation transcript;
// a non-empty segments list selects the transcript form.
type postTermRequest struct {
	Term             string            `json:"term"`
	Image            string            `json:"image"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	Category         string            `json:"category"`
	TermType         finmentor.WebType `json:"termType"`
	RelatedTerms     []string          `json:"relationsBetweenTerms"`
	Examples         []string          `json:"examples"`

	Segments  []content.Segment `json:"segments"`
	SessionID string            `json:"session_id"`
}

type postProgressRequest struct {
	UserID           string     `json:"userId"`
	ModuleID         string     `json:"moduleId"`
	PercentComplete  int        `json:"porcentajeCompletado"`
	LastAccess       *time.Time `json:"ultimoAcceso"`
	CompletedLessons []string   `json:"leccionesCompletadas"`
	CompletedQuizzes []string   `json:"quizzesCompletados"`
	TotalPoints      int        `json:"puntosTotales"`
}

type putProgressRequest struct {
	PercentComplete  *int     `json:"porcentajeCompletado"`
	CompletedLessons []string `json:"leccionesCompletadas"`
	CompletedQuizzes []string `json:"quizzesCompletados"`
	TotalPoints      *int     `json:"puntosTotales"`
}

type completeLessonRequest struct {
	LessonID string `json:"lessonId"`
}

// Score is decoded loosely so a fractional or missing value can be rejected
// with the fixed message instead of a JSON error.
type completeQuizRequest struct {
	QuizID string   `json:"quizId"`
	Score  *float64 `json:"score"`
}

type validatedQuiz struct {
	QuizID string
	Score  int
}

type postCertificateRequest struct {
	WalletAddress   string                          `json:"walletAddress"`
	ModuleID        string                          `json:"moduleId"`
	UserID          string                          `json:"userId"`
	MetadataURI     string                          `json:"metadataURI"`
	TransactionHash string                          `json:"transactionHash"`
	Level           int                             `json:"nivel"`
	Attributes      finmentor.CertificateAttributes `json:"atributos"`
}
