package mdcommand

// Lexicon keywords and item aliases for one language. Phrases are written
// naturally and folded when the parser is built.
type Lexicon struct {
	Language   string
	Keywords   map[Kind][]string
	Connectors []string
	Fillers    []string
	Aliases    map[string]string
}

// English is always consulted alongside the turn's language
var English = Lexicon{
	Language: "en",
	Keywords: map[Kind][]string{
		KindRemove:  {"remove", "delete", "drop", "take out", "take off", "dont want", "don't want", "no more", "minus"},
		KindCancel:  {"cancel", "cancel order", "clear cart", "empty cart", "start over", "forget it"},
		KindConfirm: {"confirm", "place order", "checkout", "check out", "yes", "go ahead", "proceed"},
		KindSummary: {"show cart", "view cart", "my cart", "summary", "total", "how much", "bill", "whats in my cart", "what's in my cart"},
		KindAdd:     {"add", "i want", "i need", "need", "want", "plus", "buy", "get me", "also"},
	},
	Connectors: []string{"and", "with", "plus"},
	Fillers:    []string{"i", "please", "pls", "the", "from", "to", "my", "cart", "some", "of", "all", "it", "order"},
	Aliases:    map[string]string{},
}

// Hindi covers Devanagari and romanised spellings
var Hindi = Lexicon{
	Language: "hi",
	Keywords: map[Kind][]string{
		KindRemove:  {"हटाओ", "हटा दो", "हटाना", "निकालो", "निकाल दो", "hatao", "hata do", "hatana", "nikalo", "nikal do", "nahi chahiye", "नहीं चाहिए"},
		KindCancel:  {"रद्द", "रद्द करो", "कैंसल", "radd", "radd karo", "cancel karo", "band karo", "rehne do"},
		KindConfirm: {"हाँ", "हां", "पक्का", "ठीक है", "ऑर्डर करो", "haan", "han", "pakka", "theek hai", "thik hai", "order karo", "bhej do"},
		KindSummary: {"कितना हुआ", "कुल", "दिखाओ", "kitna hua", "kitne hue", "kul", "dikhao", "hisaab", "hisab"},
		KindAdd:     {"डालो", "डाल दो", "चाहिए", "जोड़ो", "daalo", "dalo", "daal do", "chahiye", "jodo", "aur chahiye"},
	},
	Connectors: []string{"और", "aur", "tatha"},
	Fillers:    []string{"से", "को", "का", "की", "में", "भी", "se", "ko", "ka", "ki", "mein", "bhi", "wala", "wali", "mera", "meri"},
	Aliases: map[string]string{
		"टमाटर": "tomato", "tamatar": "tomato", "tamaatar": "tomato",
		"चावल": "rice", "chawal": "rice", "chaawal": "rice",
		"दूध": "milk", "doodh": "milk", "dudh": "milk",
		"प्याज": "onion", "pyaz": "onion", "pyaaz": "onion", "kanda": "onion",
		"आलू": "potato", "aloo": "potato", "alu": "potato",
		"चीनी": "sugar", "cheeni": "sugar", "chini": "sugar",
		"अंडे": "egg", "अंडा": "egg", "anda": "egg", "ande": "egg",
		"आटा": "wheat flour", "atta": "wheat flour", "aata": "wheat flour",
		"दाल": "dal", "daal": "dal",
		"नमक": "salt", "namak": "salt",
		"तेल": "oil", "tel": "oil",
		"मुर्गा": "chicken", "murga": "chicken", "chicken": "chicken",
		"दही": "curd", "dahi": "curd",
	},
}

// Tamil covers Tamil script and common romanised spellings
var Tamil = Lexicon{
	Language: "ta",
	Keywords: map[Kind][]string{
		KindRemove:  {"நீக்கு", "நீக்கவும்", "எடுத்துவிடு", "வேண்டாம்", "neekku", "neekkavum", "vendam"},
		KindCancel:  {"ரத்து", "ரத்து செய்", "rathu", "rattu"},
		KindConfirm: {"சரி", "உறுதி", "ஆமாம்", "sari", "uruthi", "aamam"},
		KindSummary: {"மொத்தம்", "காட்டு", "எவ்வளவு", "motham", "mottam", "kaattu", "evvalavu"},
		KindAdd:     {"சேர்", "சேர்க்கவும்", "வேண்டும்", "ser", "serkkavum", "venum", "vendum"},
	},
	Connectors: []string{"மற்றும்", "matrum", "marrum"},
	Fillers:    []string{"ஐ", "கொஞ்சம்", "konjam"},
	Aliases: map[string]string{
		"தக்காளி": "tomato", "thakkali": "tomato",
		"அரிசி": "rice", "arisi": "rice",
		"பால்": "milk", "paal": "milk",
		"வெங்காயம்": "onion", "vengayam": "onion",
		"உருளைக்கிழங்கு": "potato", "urulaikizhangu": "potato",
		"சர்க்கரை": "sugar", "sakkarai": "sugar",
		"முட்டை": "egg", "muttai": "egg",
	},
}

// Telugu covers Telugu script and common romanised spellings
var Telugu = Lexicon{
	Language: "te",
	Keywords: map[Kind][]string{
		KindRemove:  {"తీసివేయి", "తీసేయి", "వద్దు", "teesiveyi", "teeseyi", "vaddu"},
		KindCancel:  {"రద్దు", "raddu"},
		KindConfirm: {"సరే", "ఖాయం", "అవును", "sare", "khayam", "avunu"},
		KindSummary: {"మొత్తం", "చూపించు", "ఎంత", "mottam", "choopinchu", "entha"},
		KindAdd:     {"జోడించు", "కావాలి", "వేయి", "jodinchu", "kavali", "veyi"},
	},
	Connectors: []string{"మరియు", "mariyu"},
	Fillers:    []string{"కొంచెం", "konchem"},
	Aliases: map[string]string{
		"టమాటా": "tomato", "tamata": "tomato",
		"బియ్యం": "rice", "biyyam": "rice",
		"పాలు": "milk", "paalu": "milk",
		"ఉల్లిపాయ": "onion", "ullipaya": "onion",
		"బంగాళదుంప": "potato", "bangaladumpa": "potato",
		"చక్కెర": "sugar", "chakkera": "sugar",
		"గుడ్డు": "egg", "guddu": "egg",
	},
}

// DefaultLexicons every supported language
func DefaultLexicons() []Lexicon {
	return []Lexicon{English, Hindi, Tamil, Telugu}
}
