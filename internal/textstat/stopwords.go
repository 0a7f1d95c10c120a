package textstat

// englishStopWords is the stop-word list applied before stemming.
// It covers function words plus page furniture that survives text extraction.
var englishStopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {},
	"as": {}, "at": {}, "be": {}, "because": {}, "been": {}, "before": {},
	"being": {}, "below": {}, "between": {}, "both": {}, "but": {}, "by": {},
	"can": {}, "cannot": {}, "could": {}, "did": {}, "do": {}, "does": {},
	"doing": {}, "down": {}, "during": {}, "each": {}, "either": {}, "etc": {},
	"even": {}, "ever": {}, "every": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "herself": {}, "him": {}, "himself": {},
	"his": {}, "how": {}, "however": {}, "i": {}, "if": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "itself": {}, "just": {}, "least": {},
	"less": {}, "let": {}, "like": {}, "made": {}, "make": {}, "many": {},
	"may": {}, "me": {}, "might": {}, "more": {}, "most": {}, "much": {},
	"must": {}, "my": {}, "myself": {}, "neither": {}, "no": {}, "nor": {},
	"not": {}, "now": {}, "of": {}, "off": {}, "often": {}, "on": {}, "once": {},
	"one": {}, "only": {}, "or": {}, "other": {}, "others": {}, "otherwise": {},
	"ought": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {}, "over": {},
	"own": {}, "per": {}, "perhaps": {}, "rather": {}, "same": {}, "say": {},
	"says": {}, "see": {}, "seen": {}, "shall": {}, "she": {}, "should": {},
	"since": {}, "so": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"the": {}, "their": {}, "theirs": {}, "them": {}, "themselves": {},
	"then": {}, "there": {}, "therefore": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "though": {}, "through": {}, "thus": {}, "to": {},
	"too": {}, "two": {}, "under": {}, "until": {}, "up": {}, "upon": {},
	"us": {}, "use": {}, "used": {}, "using": {}, "very": {}, "via": {},
	"was": {}, "we": {}, "well": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "whether": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"whose": {}, "why": {}, "will": {}, "with": {}, "within": {}, "without": {},
	"would": {}, "yet": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},
	"yourselves": {},

	// page furniture
	"chapter": {}, "page": {}, "section": {}, "figure": {}, "table": {},
	"copyright": {}, "isbn": {},
}

// IsStopWord reports whether the lower-cased word is an English stop word.
func IsStopWord(word string) bool {
	_, ok := englishStopWords[word]
	return ok
}
