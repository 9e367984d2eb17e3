package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Simplified DTOs for the script
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type createSessionData struct {
	ID string `json:"id"`
}

type sendChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sendChatData struct {
	Reply              string `json:"reply"`
	Category           string `json:"category"`
	Rule               string `json:"rule"`
	InQuestionnaire    bool   `json:"in_questionnaire"`
	QuestionnaireIndex int    `json:"questionnaire_index"`
}

type qValuesData struct {
	Version uint64                        `json:"version"`
	Sets    map[string]map[string]float64 `json:"sets"`
}

var scripts = map[string][]string{
	"emotions": {
		"hello",
		"I feel so sad and lonely today",
		"thanks, that actually helps a lot",
		"I'm anxious about my exam tomorrow",
		"no",
		"work has been really stressful",
		"not really",
		"I'm happy today!",
	},
	"dass": append([]string{"DASS-21"}, dassAnswers()...),
	"fallback": {
		"qwerty",
		"banana",
		"what is the weather",
		"what can you do?",
	},
}

func dassAnswers() []string {
	answers := []string{"0", "sometimes", "2", "never", "most of the time", "1", "hmm", "3"}
	var out []string
	for valid := 0; valid < 21; {
		a := answers[len(out)%len(answers)]
		if a != "hmm" {
			valid++
		}
		out = append(out, a)
	}
	return out
}

var (
	baseURL  string
	script   string
	delay    time.Duration
	showQVal bool
)

var rootCmd = &cobra.Command{
	Use:   "simulation",
	Short: "Run a scripted conversation against a running server",
	RunE:  runSimulation,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000/api/chatbot/v1", "chatbot API base URL")
	rootCmd.Flags().StringVar(&script, "script", "emotions", "script to run (emotions, dass, fallback)")
	rootCmd.Flags().DurationVar(&delay, "delay", 300*time.Millisecond, "pause between turns")
	rootCmd.Flags().BoolVar(&showQVal, "q-values", true, "print the learned q-values at the end")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	turns, ok := scripts[script]
	if !ok {
		return fmt.Errorf("unknown script %q", script)
	}

	color.Cyan("=== MindCare Simulation Client (%s) ===", script)

	var session envelope[createSessionData]
	if err := call(http.MethodPost, "/session", nil, &session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	color.White("Session Created: %s\n", session.Data.ID)

	user := color.New(color.FgYellow, color.Bold)
	bot := color.New(color.FgGreen)
	meta := color.New(color.FgHiBlack)

	for _, text := range turns {
		user.Printf("\nUSER: %s\n", text)

		start := time.Now()
		var res envelope[sendChatData]
		err := call(http.MethodPost, "/chat", sendChatRequest{SessionID: session.Data.ID, Message: text}, &res)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}

		bot.Printf("BOT: %s\n", res.Data.Reply)
		meta.Printf("  rule=%s category=%s questionnaire=%v index=%d (%v)\n",
			res.Data.Rule, res.Data.Category, res.Data.InQuestionnaire, res.Data.QuestionnaireIndex, time.Since(start))

		time.Sleep(delay)
	}

	if showQVal {
		return printQValues()
	}
	return nil
}

func printQValues() error {
	var res envelope[qValuesData]
	if err := call(http.MethodGet, "/q-values", nil, &res); err != nil {
		return fmt.Errorf("get q-values: %w", err)
	}

	color.Cyan("\n=== Q-values (version %d) ===", res.Data.Version)
	names := make([]string, 0, len(res.Data.Sets))
	for name := range res.Data.Sets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		color.White("%s", name)
		for reply, q := range res.Data.Sets[name] {
			c := color.New(color.FgHiBlack)
			if q > 0 {
				c = color.New(color.FgGreen)
			} else if q < 0 {
				c = color.New(color.FgRed)
			}
			c.Printf("  %+.4f  %.60s\n", q, reply)
		}
	}
	return nil
}

func call(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}
