// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands through a fresh root command.
package cmd

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/configs"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// setupTestEnvironment points user settings at a temporary directory, swaps
// the password readers for ones that answer from passwords, and returns a
// working directory for documents.
func setupTestEnvironment(t *testing.T, passwords ...string) string {
	t.Helper()

	originalSettings := configs.UserVellumSettings
	originalRead, originalConfirmed, originalStdin := readPassword, readConfirmedPassword, readPasswordStdin
	originalInput, originalPrompter := editInput, editPrompter

	configs.UserVellumSettings = configs.NewUserSettings(t.TempDir())
	answers := &passwordAnswers{answers: passwords}
	readPassword = answers.read
	readConfirmedPassword = answers.readConfirmed
	readPasswordStdin = func() ([]byte, error) { return answers.read("") }
	editPrompter = answersPrompter{answers}

	t.Cleanup(func() {
		configs.UserVellumSettings = originalSettings
		readPassword, readConfirmedPassword, readPasswordStdin = originalRead, originalConfirmed, originalStdin
		editInput, editPrompter = originalInput, originalPrompter
		ResetGlobalState()
		ResetConfigState()
	})

	return t.TempDir()
}

// passwordAnswers hands out scripted passwords in order.
type passwordAnswers struct {
	answers []string
}

func (p *passwordAnswers) read(string) ([]byte, error) {
	if len(p.answers) == 0 {
		return nil, errors.New("no password available")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return []byte(answer), nil
}

// readConfirmed consumes one answer; tests give the confirmed password once.
func (p *passwordAnswers) readConfirmed(prompt, _ string) ([]byte, error) {
	return p.read(prompt)
}

type answersPrompter struct{ p *passwordAnswers }

func (a answersPrompter) Password(prompt string) ([]byte, error) { return a.p.read(prompt) }

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCLI runs args through a fresh root command holding the real DocCmd and
// ConfigCmd, and returns everything printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	Logger = logger.Logger{}
	ConfigLogger = logger.Logger{}

	rootCmd := &cobra.Command{Use: "vellum", SilenceUsage: true, SilenceErrors: true}
	rootCmd.AddCommand(DocCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)

	output, err := captureOutput(rootCmd.Execute)

	ResetGlobalState()
	ResetConfigState()
	return output, err
}
