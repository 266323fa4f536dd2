package quiz

// The five built-in question sets. Static reference data: campaigns select
// one by reason code.
var sets = map[string]*QuestionSet{
	"football": {
		Reason:      "football",
		Label:       "Football Trivia",
		Description: "Legends of the beautiful game.",
		Questions: []Question{
			{Text: "Which player has won the most Ballon d'Or awards?", Accepted: []string{"messi", "lionel messi"}},
			{Text: "Which country won the 2014 FIFA World Cup?", Accepted: []string{"germany"}},
			{Text: "Which club has won the most UEFA Champions League titles?", Accepted: []string{"real madrid", "madrid"}},
			{Text: "What nationality is Cristiano Ronaldo?", Accepted: []string{"portuguese", "portugal"}},
			{Text: "Which country hosted the 2022 FIFA World Cup?", Accepted: []string{"qatar"}},
		},
	},
	"movies": {
		Reason:      "movies",
		Label:       "Movie Night",
		Description: "Blockbusters and classics.",
		Questions: []Question{
			{Text: "Who directed the movie Titanic?", Accepted: []string{"james cameron", "cameron"}},
			{Text: "In which movie does the character Jack Sparrow appear?", Accepted: []string{"pirates of the caribbean"}},
			{Text: "What is the highest-grossing film of all time?", Accepted: []string{"avatar"}},
			{Text: "Which actor plays Iron Man in the Marvel movies?", Accepted: []string{"robert downey jr", "robert downey jr.", "downey"}},
			{Text: "What planet does Superman come from?", Accepted: []string{"krypton"}},
		},
	},
	"music": {
		Reason:      "music",
		Label:       "Music Mania",
		Description: "Hits, bands and icons.",
		Questions: []Question{
			{Text: "Which band recorded the album Abbey Road?", Accepted: []string{"the beatles", "beatles"}},
			{Text: "Who is known as the King of Pop?", Accepted: []string{"michael jackson"}},
			{Text: "Which singer released the album 1989?", Accepted: []string{"taylor swift"}},
			{Text: "What instrument does a pianist play?", Accepted: []string{"piano"}},
			{Text: "Which country is the band ABBA from?", Accepted: []string{"sweden"}},
		},
	},
	"history": {
		Reason:      "history",
		Label:       "History Buff",
		Description: "Dates and deeds that shaped the world.",
		Questions: []Question{
			{Text: "In which year did World War II end?", Accepted: []string{"1945"}},
			{Text: "Who was the first president of the United States?", Accepted: []string{"george washington", "washington"}},
			{Text: "Which ancient civilization built the pyramids of Giza?", Accepted: []string{"egyptians", "egypt", "ancient egypt"}},
			{Text: "Who painted the Mona Lisa?", Accepted: []string{"leonardo da vinci", "da vinci"}},
			{Text: "In which year did humans first land on the Moon?", Accepted: []string{"1969"}},
		},
	},
	"spidey": {
		Reason:      "spidey",
		Label:       "Spidey Special",
		Description: "For true SpideySports fans.",
		Questions: []Question{
			{Text: "What is Spider-Man's real name?", Accepted: []string{"peter parker", "peter"}},
			{Text: "In which city does Spider-Man live?", Accepted: []string{"new york", "new york city", "nyc"}},
			{Text: "What bit Peter Parker and gave him his powers?", Accepted: []string{"spider", "a spider", "radioactive spider"}},
			{Text: "What is the name of Peter Parker's aunt?", Accepted: []string{"may", "aunt may"}},
			{Text: "Which newspaper does Peter Parker photograph for?", Accepted: []string{"daily bugle", "the daily bugle"}},
		},
	},
}
