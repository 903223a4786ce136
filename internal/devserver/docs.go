package devserver

import "strings"

// doc is one chunk of the embedded NELFUND reference set. The dev server has
// no vector index; retrieval is keyword overlap against these chunks, which
// is enough to exercise the client's citation and used_retrieval paths.
type doc struct {
	source   string
	page     string
	keywords []string
	content  string
}

var corpus = []doc{
	{
		source:   "NELFUND Eligibility Guidelines",
		page:     "Section 2.1",
		keywords: []string{"eligib", "qualif", "requirement", "criteria"},
		content: "Applicants must be Nigerian citizens admitted into an accredited " +
			"tertiary institution in Nigeria, hold a valid Bank Verification Number " +
			"(BVN), provide proof of income for means testing, and must not have " +
			"defaulted on a previous student loan.",
	},
	{
		source:   "NELFUND Application Manual",
		page:     "Chapter 3",
		keywords: []string{"apply", "application", "portal", "submit", "document"},
		content: "Applications are made on the official NELFUND portal: create an " +
			"account, complete the online form, upload the admission letter, a valid " +
			"ID and BVN, then submit for review. Processing takes up to 30 working days.",
	},
	{
		source:   "NELFUND Act 2023",
		page:     "Section 1.2",
		keywords: []string{"citizen", "foreign", "australian", "nationality"},
		content: "The Nigerian Education Loan Fund is established for Nigerian " +
			"citizens studying in accredited tertiary institutions within Nigeria. " +
			"Foreign nationals are outside the scope of the Fund.",
	},
	{
		source:   "NELFUND Repayment Policy",
		page:     "Section 4.3",
		keywords: []string{"repay", "repayment", "interest", "deduction"},
		content: "Repayment begins two years after completing the National Youth " +
			"Service programme, through a 10% deduction from salary at source. The " +
			"loan is interest free.",
	},
}

// retrieve returns the corpus chunks whose keywords appear in query.
func retrieve(query string) []doc {
	lower := strings.ToLower(query)
	var hits []doc
	for _, d := range corpus {
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, d)
				break
			}
		}
	}
	return hits
}

// preview truncates content for the sources array the same way the real
// backend does.
func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
