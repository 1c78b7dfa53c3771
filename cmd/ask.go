package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/app"
	"github.com/kotoba-ai/kotoba/internal/explain"
	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/ocr"
	"github.com/kotoba-ai/kotoba/internal/request"
	"github.com/kotoba-ai/kotoba/internal/store"
	"github.com/kotoba-ai/kotoba/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the tutor about an English problem",
	Long: `Ask the tutor about an English problem. Pass the question as an
argument, attach a photo of a worksheet with --image, or both. The tutor
asks for clarification when the request could mean several things, then
explains once it is sure.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("image", "", "Path to an image of the problem (worksheet photo, textbook page)")
	askCmd.Flags().String("style", string(explain.StyleDetailed), "Explanation style: detailed, simple, socratic")
	askCmd.Flags().Bool("plain", false, "Run on stdin/stdout instead of the TUI")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	styleName, _ := cmd.Flags().GetString("style")
	style, err := explain.ParseStyle(styleName)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	query := strings.TrimSpace(strings.Join(args, " "))

	imagePath, _ := cmd.Flags().GetString("image")
	ocrText, hasImage, err := extractImageText(ctx, provider, imagePath)
	if err != nil {
		// A failed transcription should not kill the session when the
		// typed question can stand on its own.
		if query == "" {
			return err
		}
		fmt.Fprintln(os.Stderr, "Warning: could not read the image:", err)
	}

	req, err := request.Normalize(query, ocrText, hasImage)
	if err != nil {
		return err
	}

	classifier := analysis.NewClassifier(provider, analysis.DefaultClassifierConfig())
	resolver := tutor.NewResolver(classifier, provider, eventRepo, tutor.DefaultResolverConfig())
	explainer := explain.NewService(provider, explain.DefaultConfig())
	sess := tutor.NewSession()

	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		return runPlain(ctx, resolver, sess, explainer, style, req)
	}

	return app.Run(app.Options{
		Resolver:  resolver,
		Session:   sess,
		Explainer: explainer,
		Style:     style,
		Initial:   req,
	})
}

// extractImageText transcribes an attached image. Returns hasImage=true
// whenever a path was given, even if transcription failed.
func extractImageText(ctx context.Context, provider llm.Provider, path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", true, fmt.Errorf("read image: %w", err)
	}

	mimeType, err := imageMIMEType(path)
	if err != nil {
		return "", true, err
	}

	extractor := ocr.NewLLMExtractor(provider, ocr.DefaultConfig())
	text, err := extractor.ExtractText(ctx, llm.Image{MIMEType: mimeType, Data: data})
	if err != nil {
		return "", true, fmt.Errorf("transcribe image: %w", err)
	}
	return text, true, nil
}

func imageMIMEType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".webp":
		return "image/webp", nil
	case ".gif":
		return "image/gif", nil
	}
	return "", fmt.Errorf("unsupported image type %q (png, jpeg, webp, gif)", filepath.Ext(path))
}

// runPlain drives the same conversation over stdin/stdout, for terminals
// and scripts where the TUI is unwelcome.
func runPlain(ctx context.Context, resolver *tutor.Resolver, sess *tutor.Session, explainer *explain.Service, style explain.Style, req request.NormalizedRequest) error {
	scanner := bufio.NewScanner(os.Stdin)
	first := req.QueryText
	if first == "" {
		first = "(sent an image)"
	}
	transcript := []explain.Message{{Role: "learner", Content: first}}

	out, err := resolver.Submit(ctx, sess, req)
	for {
		if err != nil {
			var abandoned *tutor.AbandonedError
			if errors.As(err, &abandoned) {
				fmt.Printf("I could not pin down what you need after %d clarification round(s): %s\n", abandoned.Rounds, abandoned.Reason)
				fmt.Println("Please try again with a more specific question.")
				return nil
			}
			return err
		}
		if out.Status == tutor.StatusResolvedClear {
			break
		}

		fmt.Println()
		fmt.Println("Tutor:", out.Question)
		fmt.Print("> ")
		if !scanner.Scan() {
			sess.Abandon()
			return scanner.Err()
		}
		reply := strings.TrimSpace(scanner.Text())
		if reply == "" {
			sess.Abandon()
			fmt.Println("No reply given, ending the session.")
			return nil
		}
		transcript = append(transcript, explain.Message{Role: "learner", Content: reply})
		out, err = resolver.Reply(ctx, sess, reply)
	}

	text, err := explainer.Explain(ctx, out.Task, style)
	if err != nil {
		return fmt.Errorf("explanation: %w", err)
	}
	fmt.Println()
	fmt.Println(text)
	transcript = append(transcript, explain.Message{Role: "tutor", Content: text})

	// Follow-up loop: empty line ends the conversation with a recap.
	for {
		fmt.Println()
		fmt.Print("Follow-up (empty to finish) > ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}
		transcript = append(transcript, explain.Message{Role: "learner", Content: question})

		answer, err := explainer.Followup(ctx, transcript, question)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Could not answer that:", err)
			continue
		}
		fmt.Println()
		fmt.Println(answer)
		transcript = append(transcript, explain.Message{Role: "tutor", Content: answer})
	}

	recap, err := explainer.Summarize(ctx, transcript)
	if err == nil && recap != "" {
		fmt.Println()
		fmt.Println("Recap:", recap)
	}
	return nil
}
