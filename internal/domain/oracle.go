package domain

import "math/rand"

// OracleAnswers are the twenty classic Magic 8 Ball replies.
var OracleAnswers = [...]string{
	"It is certain.",
	"As I see it, yes.",
	"Reply hazy, try again.",
	"Don't count on it.",
	"It is decidedly so.",
	"Most likely.",
	"Ask again later.",
	"My reply is no.",
	"Without a doubt.",
	"Outlook good.",
	"Better not tell you now.",
	"My sources say no.",
	"Yes definitely.",
	"Yes.",
	"Cannot predict now.",
	"Outlook not so good.",
	"You may rely on it.",
	"Signs point to yes.",
	"Concentrate and ask again.",
	"Very doubtful.",
}

// PickAnswer returns a uniformly chosen oracle answer.
func PickAnswer(rng *rand.Rand) string {
	return OracleAnswers[rng.Intn(len(OracleAnswers))]
}
