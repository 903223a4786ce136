// Package fallback produces canned answers when the chat backend is
// unreachable. Classification is plain substring matching against a fixed,
// ordered set of topic keyword groups; the first matching group wins. Every
// reply is flagged IsFallback so the UI can label it.
package fallback

import (
	"strings"
	"time"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

type topic struct {
	keywords []string
	answer   string
	citation *model.Citation
}

// Topics are tested in declaration order; no scoring.
var topics = []topic{
	{
		keywords: []string{"eligib", "qualif"},
		answer: "To be eligible for NELFUND, you must: 1) Be a Nigerian citizen, " +
			"2) Have gained admission into an accredited tertiary institution in Nigeria, " +
			"3) Have a valid Bank Verification Number (BVN), " +
			"4) Provide proof of income (for means testing), " +
			"5) Not have defaulted on any previous student loan.",
		citation: &model.Citation{
			Document:       "NELFUND Eligibility Guidelines",
			Section:        "Section 2.1",
			ContentPreview: "Citizenship and admission requirements...",
		},
	},
	{
		keywords: []string{"apply", "application"},
		answer: "The application process involves: 1) Visit the official NELFUND portal, " +
			"2) Create an account with your details, 3) Complete the online application form, " +
			"4) Upload required documents (admission letter, ID, BVN), 5) Submit for review. " +
			"Applications are processed within 30 working days.",
		citation: &model.Citation{
			Document:       "NELFUND Application Manual",
			Section:        "Chapter 3",
			ContentPreview: "Step-by-step application process...",
		},
	},
	{
		keywords: []string{"australian", "foreign"},
		answer: "No, NELFUND is specifically for Nigerian citizens. Australian citizens or " +
			"other foreign nationals are not eligible for the Nigerian Education Loan Fund. " +
			"The program is designed to support Nigerian students studying in accredited " +
			"tertiary institutions within Nigeria.",
		citation: &model.Citation{
			Document:       "NELFUND Act 2023",
			Section:        "Section 1.2",
			ContentPreview: "Program limited to Nigerian citizens...",
		},
	},
}

const genericAnswer = "I understand you're asking about student loans. For accurate " +
	"information from NELFUND documents, please ensure the backend server is running. " +
	"Common questions include: eligibility requirements, application process, required " +
	"documents, repayment terms, and covered institutions."

// Respond classifies query and returns the canned reply for the first
// matching topic group, or generic guidance with no citations.
func Respond(query string) *model.Reply {
	lower := strings.ToLower(query)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return &model.Reply{
					Answer:     t.answer,
					Citations:  []model.Citation{*t.citation},
					Timestamp:  time.Now().UTC(),
					IsFallback: true,
				}
			}
		}
	}
	return &model.Reply{
		Answer:     genericAnswer,
		Citations:  []model.Citation{},
		Timestamp:  time.Now().UTC(),
		IsFallback: true,
	}
}
