package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nako-lang/nako/interp"
)

func main() {
	var (
		evalSrc   string
		debug     bool
		parseOnly bool
	)

	rootCmd := &cobra.Command{
		Use:   "nako [file]",
		Short: "NakoLang interpreter",
		Long:  "Tokenize, parse, and run NakoLang source files.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var (
				source   string
				fileName string
			)

			switch {
			case evalSrc != "":
				source = evalSrc
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil {
					fmt.Fprintf(os.Stderr, "読み込みエラー: %v\n", err)
					os.Exit(1)
				}
				source = string(data)
				fileName = args[0]
			default:
				fmt.Fprintln(os.Stderr, "ソースファイルか -e を指定してください。")
				os.Exit(1)
			}

			ip := interp.New(interp.Options{FileName: fileName, Debug: debug, Stdout: os.Stdout})

			if parseOnly {
				runParseOnly(ip, source)
				return
			}

			if _, err := ip.Eval(source); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&evalSrc, "eval", "e", "", "evaluate source passed on the command line")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "set the interpreter's Debug option (no node trace is written)")
	rootCmd.Flags().BoolVarP(&parseOnly, "parse", "p", false, "tokenize and print the token stream without running")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParseOnly(ip *interp.Interpreter, source string) {
	tokens, err := ip.Tokens(source)
	for _, t := range tokens {
		fmt.Println(t.Debug())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
