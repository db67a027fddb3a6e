// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// Doc generator: reads docs/commands/*.md and emits a man page per command
// (via md2man) plus a tldr snippet built from the short description and the
// Quick examples block.

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func main() {
	var repoRoot string
	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir: %v", err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		fatalf("reading commands dir %s: %v", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			fatalf("reading %s: %v", e.Name(), err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("extkit-%s.1", cmd))
		if err := os.WriteFile(manPath, md2man.Render(raw), 0o644); err != nil {
			fatalf("writing man page for %s: %v", cmd, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("extkit-%s.md", cmd))
		if err := os.WriteFile(tldrPath, []byte(buildTLDR(cmd, string(raw))), 0o644); err != nil {
			fatalf("writing TLDR for %s: %v", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no command markdown found under %s", commandsDir)
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func buildTLDR(cmd, md string) string {
	var b strings.Builder
	b.WriteString("# extkit-" + cmd + "\n\n")

	short := shortDescription(md)
	if short == "" {
		if m := h1Re.FindStringSubmatch(md); m != nil {
			short = strings.TrimSpace(m[1])
		}
	}
	b.WriteString("> " + short + "\n")
	b.WriteString("> More information: https://github.com/staranto/extkit.\n\n")

	examples := quickExamples(md)
	if len(examples) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`extkit " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex[0] + ":\n\n")
		b.WriteString("`" + ex[1] + "`\n")
	}
	return b.String()
}

// shortDescription returns the first paragraph after the "Short description"
// header.
func shortDescription(md string) string {
	idx := strings.Index(strings.ToLower(md), "short description")
	if idx < 0 {
		return ""
	}
	for _, ln := range strings.Split(md[idx:], "\n")[1:] {
		s := strings.TrimSpace(ln)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		return s
	}
	return ""
}

// quickExamples parses the fenced block after "Quick examples" into
// description/command pairs. Comment lines describe the command that
// follows them.
func quickExamples(md string) [][2]string {
	idx := strings.Index(strings.ToLower(md), "quick examples")
	if idx < 0 {
		return nil
	}
	rest := md[idx:]

	start := strings.Index(rest, "```")
	if start < 0 {
		return nil
	}
	rest = rest[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		// Skip the language tag on the opening fence.
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return nil
	}

	var examples [][2]string
	desc := ""
	for _, ln := range strings.Split(rest[:end], "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimLeft(s, "# "))
		default:
			if desc == "" {
				desc = "Example"
			}
			examples = append(examples, [2]string{desc, strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return examples
}
