package lexicon

import "strings"

// EnglishVersion labels the built-in English tables.
const EnglishVersion = "en-1"

var abbreviations = []string{
	"adj", "adm", "adv", "al", "ala", "alta", "apr", "arc", "ariz", "ark", "art", "assn", "asst",
	"attys", "aug", "ave", "bart", "bld", "bldg", "blvd", "brig", "bros", "btw", "cal", "calif",
	"capt", "cl", "cmdr", "co", "col", "colo", "comdr", "con", "conn", "corp", "cpl", "cres", "ct",
	"d.phil", "dak", "dec", "del", "dept", "det", "dist", "dr", "dr.phil", "dr.philos", "drs",
	"e.g", "ens", "esp", "esq", "etc", "exp", "expy", "ext", "feb", "fed", "fla", "ft", "fwy",
	"fy", "ga", "gen", "gov", "hon", "hosp", "hr", "hway", "hwy", "i.e", "ia", "id", "ida", "ill",
	"inc", "ind", "ing", "insp", "is", "jan", "jr", "jul", "jun", "kan", "kans", "ken", "ky", "la",
	"lt", "ltd", "maj", "man", "mar", "mass", "may", "md", "me", "med", "messrs", "mex", "mfg",
	"mich", "min", "minn", "miss", "mlle", "mm", "mme", "mo", "mont", "mr", "mrs", "ms", "msgr",
	"mssrs", "mt", "mtn", "neb", "nebr", "nev", "no", "nos", "nov", "nr", "oct", "ok", "okla",
	"ont", "op", "ord", "ore", "p", "pa", "pd", "pde", "penn", "penna", "pfc", "ph", "ph.d", "pl",
	"plz", "pp", "prof", "pvt", "que", "rd", "rs", "ref", "rep", "reps", "res", "rev", "rt",
	"sask", "sec", "sen", "sens", "sep", "sept", "sfc", "sgt", "sr", "st", "supt", "surg", "tce",
	"tenn", "tex", "univ", "usafa", "u.s", "ut", "va", "v", "ver", "viz", "vs", "vt", "wash",
	"wis", "wisc", "wy", "wyo", "yuk", "fig",
}

var prepositive = []string{
	"adm", "attys", "brig", "capt", "cmdr", "col", "cpl", "det", "dr", "gen", "gov", "ing", "lt",
	"maj", "mr", "mrs", "ms", "mt", "messrs", "mssrs", "prof", "ph", "rep", "reps", "rev", "sen",
	"sens", "sgt", "st", "supt", "v", "vs", "fig",
}

var numberAbbreviations = []string{"art", "ext", "n°", "no", "nos", "p", "pp"}

var starters = []string{
	"A", "Being", "Did", "For", "He", "How", "However", "I", "In", "It", "Millions", "More",
	"She", "That", "The", "There", "They", "We", "What", "When", "Where", "Who", "Why",
}

var exclamations = []string{"!Xũ", "!Kung", "!Xuun", "!Kung-Ekoka", "!Xun", "Yahoo!", "Y!J", "Yum!"}

var english = mustEnglish()

// English returns the built-in English dictionary. The returned value is
// shared and must be treated as read-only, which the Dictionary API enforces.
func English() *Dictionary {
	return english
}

func mustEnglish() *Dictionary {
	var entries []Entry
	for _, tok := range abbreviations {
		c := General
		if strings.Contains(tok, ".") {
			c = Acronym
		}
		entries = append(entries, Entry{Token: tok, Category: c})
	}
	// Later entries win: number abbreviations override general ones and
	// prepositive titles override both.
	for _, tok := range numberAbbreviations {
		entries = append(entries, Entry{Token: tok, Category: Numeric})
	}
	for _, tok := range prepositive {
		entries = append(entries, Entry{Token: tok, Category: Title})
	}
	for _, tok := range starters {
		entries = append(entries, Entry{Token: tok, Category: Starter})
	}
	for _, tok := range exclamations {
		entries = append(entries, Entry{Token: tok, Category: Exclamation})
	}

	d, err := New(EnglishVersion, entries...)
	if err != nil {
		panic(err)
	}
	return d
}
