package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Chinh13571113/careermate-web-sub001/internal/presentation/tui"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/engine"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive mock interview",
	Long: `Starts a mock interview in the terminal. Paste a job description,
answer the questions one at a time and receive a scored feedback report
at the end. Use --resume to pick up an interrupted session.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("Error: run requires an interactive terminal. Use 'careermate serve' for programmatic access.")
			os.Exit(1)
		}

		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		eng, closer, err := buildEngine(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		if closer != nil {
			defer closer()
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		reader := bufio.NewReader(os.Stdin)
		ctx := cmd.Context()

		resumeID, _ := cmd.Flags().GetString("resume")

		var session *domain.Session
		var pending *domain.Turn

		if resumeID != "" {
			session, pending = resumeSession(ctx, eng, render, resumeID)
			if session == nil {
				return
			}
		} else {
			owner, _ := cmd.Flags().GetString("owner")
			jobDescription := readJobDescription(cmd, reader)
			if jobDescription == "" {
				fmt.Println("No job description given. Bye!")
				return
			}

			fmt.Println("Preparing your interview...")
			session, pending, err = eng.Start(ctx, owner, jobDescription)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Session %s started. Type 'quit' at any time; resume later with --resume %s\n", session.ID, session.ID)
		}

		interviewLoop(ctx, eng, render, reader, session, pending)
	},
}

// resumeSession loads an interrupted session and decides what to show
// next. It returns a nil session when there is nothing left to answer.
func resumeSession(ctx context.Context, eng *engine.Engine, render func(string) (string, error), sessionID string) (*domain.Session, *domain.Turn) {
	session, plan, err := eng.Resume(ctx, sessionID)
	if err != nil {
		fmt.Printf("Error resuming session '%s': %v\n", sessionID, err)
		os.Exit(1)
	}

	printTranscript(render, plan.Transcript)

	switch plan.Type {
	case engine.PlanShowPending:
		fmt.Println("Welcome back! Picking up where you left off.")
		return session, plan.Pending
	case engine.PlanFinalizeNow, engine.PlanShowSummary:
		printSummary(render, session)
		return nil, nil
	}
	return session, plan.Pending
}

func readJobDescription(cmd *cobra.Command, reader *bufio.Reader) string {
	if path, _ := cmd.Flags().GetString("job-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Error reading job description file: %v\n", err)
			os.Exit(1)
		}
		return strings.TrimSpace(string(data))
	}

	fmt.Println("Paste the job description, then finish with an empty line:")
	var lines []string
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line := strings.TrimRight(text, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// interviewLoop drives the question/answer cycle until the session
// completes or the candidate quits.
func interviewLoop(ctx context.Context, eng *engine.Engine, render func(string) (string, error), reader *bufio.Reader, session *domain.Session, pending *domain.Turn) {
	for pending != nil {
		printMarkdown(render, fmt.Sprintf("**Question %d.** %s", pending.QuestionNumber, pending.QuestionText))

		answer := ""
		for answer == "" {
			fmt.Print("> ")
			text, err := reader.ReadString('\n')
			if err != nil {
				fmt.Printf("\nSession saved. Resume with --resume %s\n", session.ID)
				return
			}
			answer = strings.TrimSpace(text)
			if answer == "quit" || answer == "exit" {
				fmt.Printf("Session saved. Resume with --resume %s\n", session.ID)
				return
			}
		}

		fmt.Println("Scoring your answer...")
		next, nextPending, err := eng.SubmitAnswer(ctx, session.ID, pending.QuestionNumber, answer)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Printf("Your session is intact. Resume with --resume %s\n", session.ID)
			os.Exit(1)
		}

		scored := next.Turns[pending.QuestionNumber-1]
		if scored.Score != nil {
			printMarkdown(render, fmt.Sprintf("**Score: %.1f/10**\n\n%s", *scored.Score, feedbackText(scored)))
		}

		session = next
		pending = nextPending
	}

	printSummary(render, session)
}

func feedbackText(t domain.Turn) string {
	if t.Feedback == nil {
		return ""
	}
	return *t.Feedback
}

func printTranscript(render func(string) (string, error), events []domain.TranscriptEvent) {
	var b strings.Builder
	for _, ev := range events {
		switch ev.Type {
		case domain.EventQuestionShown:
			fmt.Fprintf(&b, "**Question %d.** %s\n\n", ev.QuestionNumber, ev.Text)
		case domain.EventAnswerRecorded:
			fmt.Fprintf(&b, "*You answered:* %s\n\n", ev.Text)
		case domain.EventScoreRecorded:
			fmt.Fprintf(&b, "Score: %.1f/10\n\n", ev.Score)
		}
	}
	if b.Len() > 0 {
		printMarkdown(render, b.String())
	}
}

func printSummary(render func(string) (string, error), session *domain.Session) {
	if session == nil || !session.Completed() {
		return
	}
	var b strings.Builder
	b.WriteString("# Interview complete\n\n")
	if session.AverageScore != nil {
		fmt.Fprintf(&b, "**Average score: %.1f/10**\n\n", *session.AverageScore)
	}
	if session.FinalReport != nil {
		b.WriteString(*session.FinalReport)
	}
	printMarkdown(render, b.String())
}

func printMarkdown(render func(string) (string, error), markdown string) {
	out, err := render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("owner", "", "Owner identifier recorded on the session")
	runCmd.Flags().String("job-file", "", "Read the job description from a file instead of stdin")
	runCmd.Flags().String("resume", "", "Resume an existing session by ID")
}
