package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/nephila-nacrea/yakusu/pkg/db"
	"github.com/nephila-nacrea/yakusu/pkg/dictionary"
	"github.com/nephila-nacrea/yakusu/pkg/gloss"
	"github.com/nephila-nacrea/yakusu/pkg/ingest"
	"github.com/nephila-nacrea/yakusu/pkg/report"
	"github.com/nephila-nacrea/yakusu/pkg/segment"

	_ "github.com/mattn/go-sqlite3"
)

const maxBodySize = 10 * 1024 * 1024 // limit for fetched HTML

func main() {
	textFlag := flag.String("text", "", "Japanese text to process")
	fileFlag := flag.String("file", "", "Path to a UTF-8 text file to process")
	urlFlag := flag.String("url", "", "URL of an article to fetch and process")
	dictFlag := flag.String("dict", dictionary.DefaultDictFileName, "Path to JMdict-Simplified JSON file (auto-downloaded if missing)")
	translateFlag := flag.Bool("translate", false, "Print a best-effort sentence translation instead of a report")
	reportFlag := flag.String("report", "", "Write the gloss report to this TSV file (default stdout)")
	dbFlag := flag.String("db", "", "Optional SQLite database to persist looked-up words")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	text, sourceTitle, err := readInput(ctx, *textFlag, *fileFlag, *urlFlag)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	// Dictionary
	if err := dictionary.EnsureDictionary(ctx, *dictFlag); err != nil {
		log.Fatalf("Failed to ensure dictionary at %s: %v", *dictFlag, err)
	}
	fmt.Println("Loading dictionary into memory...")
	start := time.Now()
	entries, err := dictionary.LoadJMdictSimplified(*dictFlag)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	index := dictionary.BuildIndex(entries)
	fmt.Printf("Dictionary loaded (%d entries) in %v\n", len(entries), time.Since(start))

	seg, err := segment.NewSegmenter()
	if err != nil {
		log.Fatalf("Failed to create segmenter: %v", err)
	}
	engine := gloss.NewEngine(index, seg)
	agg := gloss.NewAggregator(engine, seg)

	if *translateFlag {
		for _, sentence := range segment.Sentences(text) {
			fmt.Println(agg.TranslateSentence(sentence))
		}
	} else {
		words := seg.Tokenize(text)
		reportMap := agg.BuildReport(words)

		if *reportFlag != "" {
			if err := report.WriteFile(*reportFlag, reportMap); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
			fmt.Printf("Report written to %s (%d words)\n", *reportFlag, len(reportMap))
		} else {
			if err := report.Write(os.Stdout, reportMap); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
		}
	}

	if *dbFlag != "" {
		if err := persist(ctx, *dbFlag, engine, seg, text, sourceTitle, *urlFlag); err != nil {
			log.Fatalf("Failed to persist words: %v", err)
		}
	}
}

// readInput resolves exactly one of the three input flags into text.
func readInput(ctx context.Context, text, file, articleURL string) (string, string, error) {
	set := 0
	for _, v := range []string{text, file, articleURL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", "", fmt.Errorf("provide exactly one of -text, -file or -url")
	}

	switch {
	case text != "":
		return text, "stdin", nil
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return string(content), file, nil
	default:
		return fetchArticle(ctx, articleURL)
	}
}

// fetchArticle downloads a page and extracts its readable text, with ruby
// annotations stripped so furigana does not duplicate every annotated word.
func fetchArticle(ctx context.Context, articleURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return "", "", err
	}
	// Some news sites block the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("got status code %d fetching %s", resp.StatusCode, articleURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", "", err
	}
	if int64(len(body)) >= int64(maxBodySize) {
		return "", "", fmt.Errorf("response body exceeded %d bytes", maxBodySize)
	}

	body = segment.SanitizeRuby(body)

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", "", fmt.Errorf("extract article: %w", err)
	}
	fmt.Printf("Title: %s\n", article.Title)
	return article.TextContent, article.Title, nil
}

// persist stores every word of the text in the vocabulary database.
func persist(ctx context.Context, dbPath string, engine *gloss.Engine, seg *segment.Segmenter, text, title, sourceURL string) error {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	if err := db.InitDB(conn); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	sourceType := "text"
	if sourceURL != "" {
		sourceType = "website_article"
	}
	sourceID, err := db.CreateOrGetSource(conn, sourceType, title, sourceURL)
	if err != nil {
		return fmt.Errorf("persist source: %w", err)
	}

	ig := ingest.NewIngester(conn, engine, seg)
	ig.Logger = log.Default()
	linked, err := ig.Ingest(ctx, sourceID, segment.Sentences(text))
	if err != nil {
		return err
	}
	fmt.Printf("Persisted %d word occurrences to %s\n", linked, dbPath)
	return nil
}
