package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lexfeatures/internal/ingest"
	"lexfeatures/internal/tokenizer"
)

type tokenCount struct {
	Token string
	Count int
}

func newTokenizeCommand(ctx *commandContext) *cobra.Command {
	var lexiconPath string
	var top int
	var lower bool

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize a text, PDF or DOCX file and report its most frequent words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			parsed, err := ingest.ParseFile(args[0])
			if err != nil {
				return err
			}

			if strings.TrimSpace(lexiconPath) == "" {
				lexiconPath = cfg.Tokenizer.Lexicon
			}
			var lex tokenizer.Lexicon
			if lexiconPath != "" {
				if lex, err = tokenizer.LoadLexiconFile(lexiconPath); err != nil {
					return err
				}
			}
			punct := tokenizer.DefaultPunctuation
			if cfg.Tokenizer.Punctuation != "" {
				punct = cfg.Tokenizer.Punctuation
			}

			counts, total := countTokens(parsed.Lines, lex, tokenizer.NewPunctuationSet(punct), lower)
			ctx.logger(cmd).Debug("tokenized", "file", parsed.SourcePath, "lines", len(parsed.Lines), "tokens", total)

			if top > 0 && len(counts) > top {
				counts = counts[:top]
			}
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{c.Token, humanize.Comma(int64(c.Count))})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s lines, %s tokens\n", parsed.Title,
				humanize.Comma(int64(len(parsed.Lines))), humanize.Comma(int64(total)))
			fmt.Fprintln(out, renderTable([]string{"Token", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&lexiconPath, "lexicon", "", "Lexicon used to rejoin hyphenated words (defaults to tokenizer.lexicon)")
	cmd.Flags().IntVarP(&top, "top", "n", 25, "Number of tokens to display (0 for all)")
	cmd.Flags().BoolVar(&lower, "lower", false, "Lowercase tokens before counting")
	return cmd
}

// countTokens rejoins hyphenated line breaks, strips punctuation and returns
// counts ordered by frequency, then token.
func countTokens(lines []string, lex tokenizer.Lexicon, punct tokenizer.PunctuationSet, lower bool) ([]tokenCount, int) {
	byToken := map[string]int{}
	total := 0
	for _, words := range tokenizer.NewRejoiner(lex, punct).Rejoin(lines) {
		for _, w := range tokenizer.Core(words, punct) {
			if lower {
				w = strings.ToLower(w)
			}
			byToken[w]++
			total++
		}
	}

	counts := make([]tokenCount, 0, len(byToken))
	for tok, n := range byToken {
		counts = append(counts, tokenCount{Token: tok, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Token < counts[j].Token
	})
	return counts, total
}
