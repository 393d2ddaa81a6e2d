package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lecture-companion/internal/lecture"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List available subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		subjects, err := e.lectures.ListSubjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No subjects found.")
			return nil
		}
		for _, s := range subjects {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

var lessonsCmd = &cobra.Command{
	Use:   "lessons <subject>",
	Short: "List the lessons of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		lessons, err := e.lectures.ListLessons(cmd.Context(), args[0])
		if errors.Is(err, lecture.ErrNotFound) {
			return fmt.Errorf("subject %q not found", args[0])
		}
		if err != nil {
			return err
		}
		for _, l := range lessons {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}
