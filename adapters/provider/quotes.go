package provider

import (
	"context"
	"math/rand/v2"

	"github.com/satriahrh/gerch/domain"
)

var programmingQuotes = []domain.Quote{
	{Text: "The best way to get a project done faster is to start sooner.", Author: "Jim Highsmith"},
	{Text: "Code is like humor. When you have to explain it, it's bad.", Author: "Cory House"},
	{Text: "First, solve the problem. Then, write the code.", Author: "John Johnson"},
	{Text: "Experience is the name everyone gives to their mistakes.", Author: "Oscar Wilde"},
	{Text: "In order to be irreplaceable, one must always be different.", Author: "Coco Chanel"},
	{Text: "Java is to JavaScript what car is to Carpet.", Author: "Chris Heilmann"},
	{Text: "Knowledge is power.", Author: "Francis Bacon"},
	{Text: "Sometimes it pays to stay in bed on Monday, rather than spending the rest of the week debugging Monday's code.", Author: "Dan Salomon"},
	{Text: "Perfection is achieved not when there is nothing more to add, but rather when there is nothing more to take away.", Author: "Antoine de Saint-Exupery"},
	{Text: "Ruby is rubbish! PHP is phpantastic!", Author: "Nikita Popov"},
}

// ProgrammingQuotes serves quotes from a built-in list; the public quote
// APIs it used to mirror are gone.
type ProgrammingQuotes struct {
	quotes []domain.Quote
	pick   func(n int) int
}

func NewProgrammingQuotes() *ProgrammingQuotes {
	return &ProgrammingQuotes{quotes: programmingQuotes, pick: rand.IntN}
}

func (q *ProgrammingQuotes) RandomQuote(_ context.Context) (domain.Quote, error) {
	if len(q.quotes) == 0 {
		return domain.Quote{}, domain.ErrNotFound
	}
	return q.quotes[q.pick(len(q.quotes))], nil
}
