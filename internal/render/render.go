// Package render prints scoreboards and pattern partitions for a terminal.
// Colours are only emitted when the writer is a terminal that supports them.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/powellquiring/wordle-entropy/wordle"
)

type Printer struct {
	w      io.Writer
	tiles  [3]lipgloss.Style // indexed by wordle.Symbol
	rank   lipgloss.Style
	word   lipgloss.Style
	score  lipgloss.Style
	header lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Padding(0, 1)
	return &Printer{
		w: w,
		tiles: [3]lipgloss.Style{
			wordle.Absent:  tile.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")),
			wordle.Present: tile.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")),
			wordle.Correct: tile.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")),
		},
		rank: r.NewStyle().Faint(true).Width(4).Align(lipgloss.Right),
		word: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		score:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		header: r.NewStyle().Italic(true).Faint(true),
	}
}

// Tiles renders each letter of word on the background of its symbol.
func (p *Printer) Tiles(word wordle.Word, pattern wordle.Pattern) string {
	var b strings.Builder
	for i, s := range pattern {
		b.WriteString(p.tiles[s].Render(string(word[i])))
	}
	return b.String()
}

// Scoreboard prints the first top entries, one per line: rank, word, bits.
func (p *Printer) Scoreboard(sb wordle.Scoreboard, top int) error {
	for i, e := range sb.Top(top) {
		_, err := fmt.Fprintf(p.w, "%s %s  %s\n",
			p.rank.Render(fmt.Sprintf("%d.", i+1)),
			p.word.Render(e.Word.String()),
			p.score.Render(fmt.Sprintf("%.4f", e.Entropy)))
		if err != nil {
			return err
		}
	}
	return nil
}

// Partition prints how candidates split under guess, largest bucket first.
func (p *Printer) Partition(guess wordle.Word, buckets []wordle.PatternBucket) error {
	if _, err := fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("%s: %d patterns", guess, len(buckets)))); err != nil {
		return err
	}
	for _, b := range buckets {
		if _, err := fmt.Fprintf(p.w, "%s  %s  %d\n", p.Tiles(guess, b.Pattern), b.Pattern, b.Count); err != nil {
			return err
		}
	}
	return nil
}

// Feedback prints the tiles for one comparison followed by the text form.
func (p *Printer) Feedback(guess wordle.Word, pattern wordle.Pattern) error {
	_, err := fmt.Fprintf(p.w, "%s  %s\n", p.Tiles(guess, pattern), pattern)
	return err
}

// Candidates prints the remaining words on one line after a count.
func (p *Printer) Candidates(words []string) error {
	_, err := fmt.Fprintf(p.w, "%s %s\n",
		p.header.Render(fmt.Sprintf("%d possible:", len(words))),
		strings.Join(words, " "))
	return err
}

// NextGuess prints the suggested guess and whether it could be the answer.
func (p *Printer) NextGuess(guess wordle.Word, possible bool) error {
	note := "not a possible answer"
	if possible {
		note = "possible answer"
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s\n",
		p.header.Render("next guess:"), p.word.Render(guess.String()), p.header.Render("("+note+")"))
	return err
}

// Games prints simulated games grouped by number of guesses, shortest first,
// each group headed by its size.
func (p *Printer) Games(games map[int][][]wordle.Word) error {
	lengths := make([]int, 0, len(games))
	for n := range games {
		lengths = append(lengths, n)
	}
	slices.Sort(lengths)
	total, sum := 0, 0
	for _, n := range lengths {
		group := games[n]
		total += len(group)
		sum += n * len(group)
		if _, err := fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("%d guesses: %d games", n, len(group)))); err != nil {
			return err
		}
		for _, guesses := range group {
			words := make([]string, len(guesses))
			for i, w := range guesses {
				words[i] = w.String()
			}
			solution := guesses[len(guesses)-1]
			if _, err := fmt.Fprintf(p.w, "%s: %s\n", p.word.Render(solution.String()), strings.Join(words, " ")); err != nil {
				return err
			}
		}
	}
	if total == 0 {
		return nil
	}
	_, err := fmt.Fprintln(p.w, p.score.Render(fmt.Sprintf("average %.4f guesses over %d games", float64(sum)/float64(total), total)))
	return err
}
