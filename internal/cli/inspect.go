package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsea/gsea"
	"github.com/gsea/gsea/cipher"
	"github.com/gsea/gsea/codec"
	"github.com/gsea/gsea/lz77"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of an LZ77 compressed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			s := lz77.NewScanner(data)
			var literals, matches, decoded int
			for s.Scan() {
				t := s.Token()
				fmt.Fprintln(out, t)
				if t.Kind == lz77.MatchToken {
					matches++
					decoded += t.Length
				} else {
					literals++
					decoded++
				}
			}
			if err := s.Err(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d literals, %d matches, %d bytes decoded\n", literals, matches, decoded)
			return nil
		},
	}
}

func newExplainCommand() *cobra.Command {
	var fast bool
	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Show the matches the LZ77 encoder finds in a file",
		Long: `explain prints FILE with every match the LZ77 encoder would emit
replaced by <length,distance>. A literal '<' is printed as "<<".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			mf := lz77.NewMatchFinder()
			if fast {
				mf = lz77.NewFastMatchFinder()
			}
			w := &gsea.Writer{
				Dest:        cmd.OutOrStdout(),
				MatchFinder: mf,
				Encoder:     gsea.TextEncoder{},
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&fast, "fast", false, "use the hash chain match finder")
	return cmd
}

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available compression and encryption algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "compression:")
			for _, name := range codec.Names() {
				alg, err := codec.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-8s %s%s\n", name, alg.Suffix, defaultMark(name == codec.Default))
			}
			fmt.Fprintln(out, "encryption:")
			for _, name := range cipher.Names() {
				fmt.Fprintf(out, "  %s%s\n", name, defaultMark(name == cipher.Default))
			}
			return nil
		},
	}
}

func defaultMark(isDefault bool) string {
	if isDefault {
		return " (default)"
	}
	return ""
}
