package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"interview-prep-agent/internal/config"
	"interview-prep-agent/internal/services"
)

// Seeds the Qdrant question bank from a plain-text exemplar file. Each line is
// "category<TAB>question", category one of general, cv_based, technical.
func main() {
	log.Println("🚀 Starting question bank ingestion...")

	exemplarFile := "./reference_docs/question_exemplars.txt"
	if len(os.Args) > 1 {
		exemplarFile = os.Args[1]
	}

	cfg := config.Load()
	if !cfg.QuestionBankEnabled() {
		log.Fatal("❌ QDRANT_URL is not set; nothing to ingest into")
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(
		ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	questionBank, err := services.NewQuestionBank(
		cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize question bank: %v", err)
	}

	if err := questionBank.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	f, err := os.Open(exemplarFile)
	if err != nil {
		log.Fatalf("❌ Failed to open exemplar file: %v", err)
	}
	defer f.Close()

	successCount := 0
	failCount := 0
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		category, text, ok := strings.Cut(line, "\t")
		if !ok {
			log.Printf("⚠️  Line %d has no category separator, skipping", lineNo)
			failCount++
			continue
		}

		category = strings.TrimSpace(category)
		text = strings.TrimSpace(text)

		embedding, err := geminiService.GenerateEmbedding(ctx, text)
		if err != nil {
			log.Printf("❌ Failed to embed line %d: %v", lineNo, err)
			failCount++
			continue
		}

		exemplarID := fmt.Sprintf("%s_exemplar_%d", category, lineNo)
		if err := questionBank.UpsertExemplar(ctx, exemplarID, category, text, embedding); err != nil {
			log.Printf("❌ Failed to store line %d: %v", lineNo, err)
			failCount++
			continue
		}

		successCount++
		if successCount%10 == 0 {
			log.Printf("📊 Progress: %d exemplars stored", successCount)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("❌ Failed reading exemplar file: %v", err)
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d exemplars", successCount)
	log.Printf("   ❌ Failed: %d lines", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}

	log.Println("✅ All exemplars ingested successfully!")
}
