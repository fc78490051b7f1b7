package memory

import (
	"time"

	"github.com/tinoosan/finmentor/internal/finmentor"
)

// Seed replaces the store contents with the demo dataset. Profiles are
// stamped with the current time; everything else carries fixed dates.
func (s *Store) Seed() {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = seedProfiles(now)
	s.modules = seedModules()
	s.terms = seedTerms()
	s.progress = seedProgress()
	s.certificates = seedCertificates()
}

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedProfiles(now time.Time) []finmentor.UserProfile {
	return []finmentor.UserProfile{
		{
			ID:          "1",
			UserID:      "user-123",
			LevelWeb2:   3,
			LevelWeb3:   1,
			Interests:   []string{"investing", "savings", "crypto"},
			TermHistory: []string{"ETF", "DeFi", "staking", "compound interest"},
			LastUpdated: now,
		},
		{
			ID:          "2",
			UserID:      "user-456",
			LevelWeb2:   4,
			LevelWeb3:   2,
			Interests:   []string{"trading", "crypto", "NFTs"},
			TermHistory: []string{"liquidity pool", "yield farming", "market cap", "bull market"},
			LastUpdated: now,
		},
	}
}

func seedModules() []finmentor.Module {
	return []finmentor.Module{
		{
			ID:            "mod-1",
			Title:         "Fundamentos de Finanzas Personales",
			Description:   "Aprende los conceptos básicos para gestionar tus finanzas personales de manera efectiva",
			Category:      "finanzas-personales",
			WebType:       finmentor.WebTypeWeb2,
			Difficulty:    1,
			Prerequisites: []string{},
			CreatedAt:     day("2024-01-15T00:00:00Z"),
			UpdatedAt:     day("2024-02-20T00:00:00Z"),
			Lessons: []finmentor.Lesson{
				{
					ID:               "lec-1-1",
					Title:            "Presupuesto Personal",
					Content:          "Un presupuesto personal es una herramienta financiera que te ayuda a planificar y controlar tus ingresos y gastos...",
					EstimatedMinutes: 10,
					Format:           "texto",
					ExtraResources: []finmentor.Resource{
						{Kind: "video", URL: "https://example.com/video1"},
						{Kind: "plantilla", URL: "https://example.com/template1"},
					},
				},
				{
					ID:               "lec-1-2",
					Title:            "Ahorro e Inversión Básica",
					Content:          "El ahorro es la base de la salud financiera. Aprender a separar una parte de tus ingresos...",
					EstimatedMinutes: 15,
					Format:           "texto",
					ExtraResources: []finmentor.Resource{
						{Kind: "calculadora", URL: "https://example.com/calculator1"},
					},
				},
			},
			Quizzes: []finmentor.Quiz{
				{
					ID:          "quiz-1",
					Title:       "Evaluación de Fundamentos Financieros",
					Difficulty:  1,
					TotalPoints: 100,
					Questions: []finmentor.Question{
						{
							ID:     "q1",
							Prompt: "¿Cuál es el primer paso para crear un presupuesto personal?",
							Options: []string{
								"Calcular gastos fijos",
								"Determinar ingresos mensuales",
								"Establecer metas de ahorro",
								"Analizar gastos variables",
							},
							CorrectAnswer: 1,
						},
						{
							ID:            "q2",
							Prompt:        "¿Qué porcentaje de ingresos se recomienda destinar al ahorro?",
							Options:       []string{"5%", "10-20%", "50%", "Lo que sobre al final del mes"},
							CorrectAnswer: 1,
						},
					},
				},
			},
		},
		{
			ID:            "mod-2",
			Title:         "Introducción a las Criptomonedas",
			Description:   "Conoce los fundamentos de las criptomonedas y la tecnología blockchain",
			Category:      "crypto",
			WebType:       finmentor.WebTypeWeb3,
			Difficulty:    2,
			Prerequisites: []string{"mod-1"},
			CreatedAt:     day("2024-01-20T00:00:00Z"),
			UpdatedAt:     day("2024-03-01T00:00:00Z"),
			Lessons: []finmentor.Lesson{
				{
					ID:               "lec-2-1",
					Title:            "¿Qué es Blockchain?",
					Content:          "Blockchain es una tecnología de registro distribuido que permite mantener una lista creciente de registros...",
					EstimatedMinutes: 12,
					Format:           "texto",
					ExtraResources: []finmentor.Resource{
						{Kind: "video", URL: "https://example.com/blockchain-video"},
						{Kind: "infografía", URL: "https://example.com/blockchain-infographic"},
					},
				},
				{
					ID:               "lec-2-2",
					Title:            "Bitcoin y Ethereum",
					Content:          "Bitcoin fue la primera criptomoneda, creada en 2009 por una persona o grupo bajo el seudónimo de Satoshi Nakamoto...",
					EstimatedMinutes: 15,
					Format:           "texto",
					ExtraResources: []finmentor.Resource{
						{Kind: "artículo", URL: "https://example.com/bitcoin-vs-ethereum"},
					},
				},
			},
			Quizzes: []finmentor.Quiz{
				{
					ID:          "quiz-2",
					Title:       "Evaluación de Conocimientos Blockchain",
					Difficulty:  2,
					TotalPoints: 100,
					Questions: []finmentor.Question{
						{
							ID:     "q1",
							Prompt: "¿Qué característica define principalmente a una blockchain?",
							Options: []string{
								"Velocidad de transacción",
								"Inmutabilidad y descentralización",
								"Facilidad de uso",
								"Bajo costo operativo",
							},
							CorrectAnswer: 1,
						},
						{
							ID:     "q2",
							Prompt: "¿Cuál es la principal diferencia entre Bitcoin y Ethereum?",
							Options: []string{
								"El precio",
								"La fecha de creación",
								"Bitcoin es solo moneda, Ethereum permite contratos inteligentes",
								"Bitcoin es más seguro",
							},
							CorrectAnswer: 2,
						},
					},
				},
			},
		},
	}
}

func seedTerms() []finmentor.Term {
	return []finmentor.Term{
		{
			ID:               "term-1",
			Term:             "ETF",
			ShortDescription: "Fondo cotizado en bolsa",
			LongDescription:  "Un ETF (Exchange-Traded Fund) es un tipo de fondo de inversión que cotiza en bolsa como una acción...",
			Category:         "inversiones",
			TermType:         finmentor.WebTypeWeb2,
			RelatedTerms:     []string{"fondo indexado", "comisiones", "diversificación"},
			Examples:         []string{"SPDR S&P 500 ETF (SPY)", "iShares MSCI Emerging Markets ETF (EEM)"},
		},
		{
			ID:               "term-2",
			Term:             "DeFi",
			ShortDescription: "Finanzas descentralizadas",
			LongDescription:  "DeFi (Decentralized Finance) se refiere a aplicaciones financieras construidas sobre redes blockchain...",
			Category:         "crypto",
			TermType:         finmentor.WebTypeWeb3,
			RelatedTerms:     []string{"lending", "yield farming", "liquidity pool", "smart contract"},
			Examples:         []string{"Uniswap", "Aave", "Compound"},
		},
		{
			ID:               "term-3",
			Term:             "Staking",
			ShortDescription: "Bloqueo de criptomonedas para validar transacciones",
			LongDescription:  "El staking consiste en mantener fondos en una wallet para participar en el funcionamiento de una red blockchain...",
			Category:         "crypto",
			TermType:         finmentor.WebTypeWeb3,
			RelatedTerms:     []string{"proof of stake", "validator", "rewards"},
			Examples:         []string{"Ethereum 2.0", "Cardano", "Solana"},
		},
	}
}

func seedProgress() []finmentor.Progress {
	return []finmentor.Progress{
		{
			ID:               "prog-1",
			UserID:           "user-123",
			ModuleID:         "mod-1",
			PercentComplete:  75,
			LastAccess:       day("2024-03-10T15:30:00Z"),
			CompletedLessons: []string{"lec-1-1"},
			CompletedQuizzes: []string{},
		},
		{
			ID:               "prog-2",
			UserID:           "user-123",
			ModuleID:         "mod-2",
			PercentComplete:  25,
			LastAccess:       day("2024-03-12T10:15:00Z"),
			CompletedLessons: []string{"lec-2-1"},
			CompletedQuizzes: []string{},
		},
		{
			ID:               "prog-3",
			UserID:           "user-456",
			ModuleID:         "mod-1",
			PercentComplete:  100,
			LastAccess:       day("2024-03-05T09:45:00Z"),
			CompletedLessons: []string{"lec-1-1", "lec-1-2"},
			CompletedQuizzes: []string{"quiz-1"},
			TotalPoints:      85,
		},
	}
}

func seedCertificates() []finmentor.Certificate {
	return []finmentor.Certificate{
		{
			TokenID:         "nft-1",
			WalletAddress:   "0x1234567890abcdef1234567890abcdef12345678",
			ModuleID:        "mod-1",
			UserID:          "user-456",
			MetadataURI:     "ipfs://QmXyZ123456789",
			TransactionHash: "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
			IssuedAt:        day("2024-03-05T10:30:00Z"),
			Level:           1,
			Attributes: finmentor.CertificateAttributes{
				Title:  "Fundamentos de Finanzas Personales",
				Score:  85,
				Issuer: "FinMentor AI",
				Skills: []string{"presupuesto", "ahorro", "inversión básica"},
			},
		},
		{
			TokenID:         "nft-2",
			WalletAddress:   "0x0987654321fedcba0987654321fedcba09876543",
			ModuleID:        "mod-2",
			UserID:          "user-789",
			MetadataURI:     "ipfs://QmAbC987654321",
			TransactionHash: "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
			IssuedAt:        day("2024-03-10T14:45:00Z"),
			Level:           2,
			Attributes: finmentor.CertificateAttributes{
				Title:  "Introducción a las Criptomonedas",
				Score:  92,
				Issuer: "FinMentor AI",
				Skills: []string{"blockchain", "bitcoin", "ethereum", "wallets"},
			},
		},
	}
}
