// Package cli implements an interactive shell over a string-keyed tree.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fatih/color"

	"bptree"
)

var (
	errorColor  = color.New(color.FgRed)
	promptColor = color.New(color.FgYellow)
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *bptree.Tree[string, string]
	visualizer *Visualizer
}

func NewCli(s *bufio.Scanner, out io.Writer, t *bptree.Tree[string, string]) *Cli {
	v := &Visualizer{
		Tree: t,
	}
	return &Cli{scanner: s, out: out, tree: t, visualizer: v}
}

// Start runs the read-eval loop until EXIT or the end of input
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B+ Tree CLI

Available Commands:
  SET <key> <val>      Insert or replace a key-value pair
  DEL <key>            Remove a key-value pair
  GET <key>            Retrieve the value for key
  SCAN [from [to]]     List pairs in key order, from inclusive, to exclusive
  DUMP                 Print the tree level by level
  STATS                Print structural counters
  VERIFY               Check the tree invariants
  HELP                 Show this message
  EXIT                 Terminate this session`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, promptColor.Sprint("> "))
}

func (c *Cli) printError(format string, args ...any) {
	fmt.Fprintln(c.out, errorColor.Sprintf(format, args...))
}

// processInput executes one command line and reports whether the session
// continues.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.printError("Unknown command \"%s\"", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "scan":
		c.processScanCommand(fields[1:])
	case "dump":
		fmt.Fprintln(c.out, c.visualizer.Visualize())
	case "stats":
		c.processStatsCommand()
	case "verify":
		c.processVerifyCommand()
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	c.tree.Insert(args[0], args[1])
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}

	if !c.checkLookup(c.tree.Delete(args[0])) {
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

// checkLookup reports err from a GET or DEL and whether the command succeeded
func (c *Cli) checkLookup(err error) bool {
	switch {
	case errors.Is(err, bptree.ErrEmptyTree):
		c.printError("Tree is empty.")
		return false
	case err != nil:
		c.printError("Key not found.")
		return false
	}
	return true
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	val, err := c.tree.Find(args[0])
	if !c.checkLookup(err) {
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processScanCommand(args []string) {
	var pairs iter.Seq2[string, string]
	switch len(args) {
	case 0:
		pairs = c.tree.All()
	case 1:
		pairs = c.tree.Ascend(args[0])
	case 2:
		pairs = c.tree.Range(args[0], args[1])
	default:
		fmt.Fprintln(c.out, "Usage: SCAN [from [to]]")
		return
	}

	count := 0
	for k, v := range pairs {
		fmt.Fprintf(c.out, "%s = %s\n", k, v)
		count++
	}
	fmt.Fprintf(c.out, "(%d pairs)\n", count)
}

func (c *Cli) processStatsCommand() {
	s := c.tree.Stats()
	fmt.Fprintf(c.out, "keys=%d height=%d degree=%d\n", c.tree.Len(), c.tree.Height(), c.tree.Degree())
	fmt.Fprintf(c.out, "leaf_splits=%d branch_splits=%d merges=%d redistributions=%d\n",
		s.LeafSplits, s.BranchSplits, s.Merges, s.Redistributions)
	fmt.Fprintf(c.out, "root_growths=%d root_collapses=%d cache_hits=%d cache_misses=%d\n",
		s.RootGrowths, s.RootCollapses, s.CacheHits, s.CacheMisses)
}

func (c *Cli) processVerifyCommand() {
	if err := c.tree.Verify(); err != nil {
		c.printError("%v", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}
