package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.xml")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":       {Values: []string{"letter", "a4", "legal"}},
	"orientation":     {Values: []string{"portrait", "landscape"}},
	"footer-position": {Values: []string{"left", "center", "right"}},
	"format":          {Values: []string{"html", "pdf", "markdown", "docx"}},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"css":    {FileGlob: "*.css"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "output formats: html, pdf, markdown, docx")

	// Flag groups - same as parseConvertFlags
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addTOCFlags(fs, &f.toc)
	addNavFlags(fs, &f.nav)
	addBackLinkFlags(fs, &f.backLink)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlagDefs := extractFlagsFromFlagSet(buildConvertFlagSet())

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert XML documents to HTML, PDF, Markdown, or DOCX",
			Flags:       convertFlagDefs,
			TakesFiles:  true,
			FilePattern: "*.xml",
		},
		{
			Name:        "analyze",
			Desc:        "Inspect the structure of an XML document",
			TakesFiles:  true,
			FilePattern: "*.xml",
		},
		{
			Name: "formats",
			Desc: "List available output formats",
		},
		{
			Name: "doctor",
			Desc: "Check the environment for PDF generation",
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh)", ErrUnsupportedShell, shell)
	}
}

// generateBash writes a bash completion script built from the command
// registry.
func generateBash(w io.Writer) error {
	commands := getCommands()

	var names []string
	for _, c := range commands {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for xml2doc")
	fmt.Fprintln(w, "_xml2doc() {")
	fmt.Fprintln(w, "  local cur prev words cword")
	fmt.Fprintln(w, "  cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintf(w, "    COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	fmt.Fprintln(w, "    return")
	fmt.Fprintln(w, "  fi")
	fmt.Fprintln(w)

	// Value completion for flags that take enums or paths
	fmt.Fprintln(w, "  case \"$prev\" in")
	for _, c := range commands {
		for _, f := range c.Flags {
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(w, "    --%s)\n", f.Long)
				fmt.Fprintf(w, "      COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return ;;\n", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(w, "    --%s)\n", f.Long)
				fmt.Fprintln(w, "      COMPREPLY=( $(compgen -f -- \"$cur\") ); return ;;")
			case flagDir:
				fmt.Fprintf(w, "    --%s)\n", f.Long)
				fmt.Fprintln(w, "      COMPREPLY=( $(compgen -d -- \"$cur\") ); return ;;")
			}
		}
	}
	fmt.Fprintln(w, "  esac")
	fmt.Fprintln(w)

	// Flag completion per command
	fmt.Fprintln(w, "  case \"${COMP_WORDS[1]}\" in")
	for _, c := range commands {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		var flagWords []string
		for _, f := range c.Flags {
			flagWords = append(flagWords, "--"+f.Long)
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintln(w, "      if [[ \"$cur\" == -* ]]; then")
		fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(flagWords, " "))
		if c.TakesFiles {
			fmt.Fprintln(w, "      else")
			fmt.Fprintln(w, "        COMPREPLY=( $(compgen -f -- \"$cur\") )")
		}
		fmt.Fprintln(w, "      fi")
		fmt.Fprintln(w, "      return ;;")
	}
	fmt.Fprintln(w, "  esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _xml2doc xml2doc")
	return nil
}

// generateZsh writes a zsh completion script built from the command
// registry.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	fmt.Fprintln(w, "#compdef xml2doc")
	fmt.Fprintln(w, "# zsh completion for xml2doc")
	fmt.Fprintln(w, "_xml2doc() {")
	fmt.Fprintln(w, "  local -a commands")
	fmt.Fprintln(w, "  commands=(")
	for _, c := range commands {
		fmt.Fprintf(w, "    '%s:%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", ""))
	}
	fmt.Fprintln(w, "  )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "    _describe 'command' commands")
	fmt.Fprintln(w, "    return")
	fmt.Fprintln(w, "  fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  case $words[2] in")
	for _, c := range commands {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintln(w, "      _arguments \\")
		for _, f := range c.Flags {
			desc := strings.ReplaceAll(f.Desc, "'", "")
			desc = strings.ReplaceAll(desc, "[", "(")
			desc = strings.ReplaceAll(desc, "]", ")")
			switch f.Type {
			case flagBool:
				fmt.Fprintf(w, "        '--%s[%s]' \\\n", f.Long, desc)
			case flagEnum:
				fmt.Fprintf(w, "        '--%s[%s]:value:(%s)' \\\n", f.Long, desc, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(w, "        '--%s[%s]:file:_files' \\\n", f.Long, desc)
			case flagDir:
				fmt.Fprintf(w, "        '--%s[%s]:directory:_files -/' \\\n", f.Long, desc)
			default:
				fmt.Fprintf(w, "        '--%s[%s]:value:' \\\n", f.Long, desc)
			}
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "        '*:file:_files -g \"%s\"'\n", c.FilePattern)
		} else {
			fmt.Fprintln(w, "        ;")
		}
		fmt.Fprintln(w, "      ;;")
	}
	fmt.Fprintln(w, "  esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "_xml2doc \"$@\"")
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xml2doc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(xml2doc completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(xml2doc completion zsh)\"")
}
