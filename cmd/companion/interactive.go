package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/quiz"
)

var chatCmd = &cobra.Command{
	Use:   "chat <subject> <lesson>",
	Short: "Ask questions about a lecture",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := localeFlag(cmd)
		if err != nil {
			return err
		}
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		gen, err := e.generator(cmd.Context())
		if err != nil {
			return err
		}

		lc := lecture.Open(cmd.Context(), e.lectures, args[0], args[1])
		return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), chat.NewService(gen), lc, loc)
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <subject> <lesson>",
	Short: "Take a quiz on a lecture",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := localeFlag(cmd)
		if err != nil {
			return err
		}
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		gen, err := e.generator(cmd.Context())
		if err != nil {
			return err
		}

		lc := lecture.Open(cmd.Context(), e.lectures, args[0], args[1])
		svc := quiz.NewService(gen, e.log, e.cfg.QuizQuestionCount)
		return runQuiz(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), svc, lc, loc)
	},
}

func init() {
	chatCmd.Flags().String("locale", string(locale.Default), "Interface and response language (en, ar)")
	quizCmd.Flags().String("locale", string(locale.Default), "Interface and response language (en, ar)")
}

func printLectureHeader(out io.Writer, lc lecture.Context, title string) {
	fmt.Fprintf(out, "%s: %s / %s\n", title, lc.Subject, lc.Lesson)
	if lc.Missing {
		fmt.Fprintln(out, lc.Text)
	}
}

// runChat reads one question per line until EOF or /quit.
func runChat(ctx context.Context, in io.Reader, out io.Writer, svc *chat.Service, lc lecture.Context, loc locale.Locale) error {
	printLectureHeader(out, lc, loc.Strings.ChatMode)

	sess := &chat.Session{}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", loc.Strings.ChatPlaceholder)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := svc.Ask(ctx, sess, lc, line, loc)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", loc.Strings.ErrorResponse, err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", reply)
	}
}

const quizHelp = "Type an answer, or /next, /discuss, /ask <question>, /regenerate, /quit"

// runQuiz drives the quiz state machine from line commands.
func runQuiz(ctx context.Context, in io.Reader, out io.Writer, svc *quiz.Service, lc lecture.Context, loc locale.Locale) error {
	printLectureHeader(out, lc, loc.Strings.QuizMode)
	fmt.Fprintln(out, quizHelp)

	st := &quiz.State{}
	enter := func() {
		fmt.Fprintln(out, loc.Strings.GeneratingQuestions)
		var bankErr *quiz.BankGenerationError
		if err := svc.Enter(ctx, st, lc.Text); errors.As(err, &bankErr) {
			fmt.Fprintln(out, loc.Strings.ErrorGenerating)
		}
		showQuestion(out, st, loc)
	}
	enter()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/regenerate":
			st.Reset()
			enter()
		case line == "/next":
			if err := st.Next(); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			showQuestion(out, st, loc)
		case line == "/discuss":
			if err := st.Discuss(); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, loc.Strings.DiscussHere)
		case strings.HasPrefix(line, "/ask"):
			reply, err := svc.AskDiscussion(ctx, st, loc, strings.TrimSpace(strings.TrimPrefix(line, "/ask")))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "%s\n\n", reply)
		default:
			fmt.Fprintln(out, loc.Strings.EvaluatingAnswer)
			if err := svc.SubmitAnswer(ctx, st, loc, line); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "%s\n\n", st.PendingEvaluation)
		}
	}
}

func showQuestion(out io.Writer, st *quiz.State, loc locale.Locale) {
	q, ok := st.Current()
	if !ok {
		fmt.Fprintln(out, loc.Strings.NoQuestions)
		return
	}
	fmt.Fprintf(out, "\n%s\n%s\n", loc.QuestionNumber(st.CurrentIndex, len(st.Bank)), q.Prompt(loc))
}
