// Copyright (c) 2024, The Network Simulator Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/simonlingoogle/go-simplelogger"
	"golang.org/x/term"
)

// CliHandler executes one command line and provides the prompt.
type CliHandler interface {
	HandleCommand(cmd string, output io.Writer) error
	GetPrompt() string
}

// CliOptions configures the CLI loop.
type CliOptions struct {
	EchoInput bool
	Stdin     *os.File
	Stdout    *os.File
}

// DefaultCliOptions returns the default CLI options.
func DefaultCliOptions() *CliOptions {
	return &CliOptions{
		EchoInput: false,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}
}

// RunCli reads command lines until EOF or an `exit`, dispatching each to the
// handler. A terminal gets a readline prompt with history; piped input is
// consumed line by line.
func RunCli(handler CliHandler, options *CliOptions) error {
	if options == nil {
		options = DefaultCliOptions()
	}

	if !term.IsTerminal(int(options.Stdin.Fd())) {
		return runCliPiped(handler, options)
	}

	readlineConfig := &readline.Config{
		Prompt:            handler.GetPrompt(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		Stdin:             options.Stdin,
		Stdout:            options.Stdout,
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(readlineConfig)
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		if done := dispatchLine(handler, line, options); done {
			break
		}
	}
	simplelogger.Debugf("CLI exited.")
	return nil
}

func runCliPiped(handler CliHandler, options *CliOptions) error {
	scanner := bufio.NewScanner(options.Stdin)
	for scanner.Scan() {
		if done := dispatchLine(handler, scanner.Text(), options); done {
			break
		}
	}
	return scanner.Err()
}

// dispatchLine hands one trimmed line to the handler; it reports whether the
// CLI should stop.
func dispatchLine(handler CliHandler, line string, options *CliOptions) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	if options.EchoInput {
		_, _ = options.Stdout.WriteString(handler.GetPrompt() + line + "\n")
	}

	if err := handler.HandleCommand(line, options.Stdout); err != nil {
		simplelogger.Errorf("CLI command failed: %v", err)
		return true
	}
	return line == "exit"
}
