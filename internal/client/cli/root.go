package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.externalID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.externalID)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Aegis CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.login(ctx)

	for {
		fmt.Printf("aegis %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: assess <image-file>, symptom, risk, history, exit")
			} else {
				fmt.Println("Available commands: login")
			}

		case "login":
			a.login(ctx)
		case "assess":
			if len(args) == 0 {
				fmt.Println("Usage: assess <image-file>")
				continue
			}
			a.assess(ctx, args[0])
		case "symptom":
			a.symptom(ctx)
		case "risk":
			a.risk(ctx)
		case "history":
			a.history(ctx)
		case "key":
			a.enterKey()
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

func (a *App) login(ctx context.Context) {
	externalID, err := GetSimpleText(a.reader, "Enter your patient id", a.out)
	if err != nil || externalID == "" {
		fmt.Fprintln(a.out, "Login cancelled.")
		return
	}
	displayName, err := GetSimpleText(a.reader, "Enter your display name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Login cancelled.")
		return
	}

	res, err := a.api.Login(ctx, externalID, displayName)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}
	a.externalID = res.ExternalID
	fmt.Fprintf(a.out, "Logged in as %s.\n", res.ExternalID)
}

// enterKey lets the user supply an API key out of band, e.g. when the key
// was rotated after login.
func (a *App) enterKey() {
	key, err := GetAPIKey(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read key:", err)
		return
	}
	a.api.SetAPIKey(string(key))
	fmt.Fprintln(a.out, "API key updated.")
}

func (a *App) assess(ctx context.Context, path string) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return
	}

	image, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read image:", err)
		return
	}

	res, err := a.api.AssessWound(ctx, a.externalID, fileBaseName(path), image)
	if err != nil {
		fmt.Fprintln(a.out, "Assessment failed:", err)
		return
	}
	fmt.Fprintf(a.out, "%s (probability %.2f, label %s)\n", res.Status, res.Probability, res.Label)
}

func (a *App) symptom(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return
	}

	text, err := GetSimpleText(a.reader, "Describe your symptoms", a.out)
	if err != nil || text == "" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	res, err := a.api.LogSymptom(ctx, a.externalID, text)
	if err != nil {
		fmt.Fprintln(a.out, "Could not log symptom:", err)
		return
	}
	fmt.Fprintf(a.out, "Recorded. Urgency %.2f.\n", res.Urgency)
}

func (a *App) risk(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return
	}

	res, err := a.api.Risk(ctx, a.externalID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not fetch risk:", err)
		return
	}
	fmt.Fprintf(a.out, "Risk %d/100. %s\n", res.Risk, res.Reason)
}

func (a *App) history(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return
	}

	items, err := a.api.RiskHistory(ctx, a.externalID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not fetch history:", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No scores yet.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "%s  %d/100  %s\n", item.CreatedAt.Format("2006-01-02 15:04"), item.Risk, item.Reason)
	}
}

func fileBaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
