package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghana-translator/internal/config"
	"ghana-translator/internal/langcodes"
	"ghana-translator/internal/logger"
	"ghana-translator/internal/terminology"
	"ghana-translator/internal/translator"
)

// Command line flags
var (
	fileFlag        = flag.String("file", "", "Input file with one text per line (batch mode)")
	targetFlag      = flag.String("target", "", "Target language code (required)")
	sourceFlag      = flag.String("source", "en", "Source language code")
	terminologyFlag = flag.String("terminology", "", "Path to terminology CSV file")
	outputFlag      = flag.String("output", "", "Output file path (default: stdout)")
	engineFlag      = flag.String("engine", "", "Translation engine: google or llm")
	timeoutFlag     = flag.Int("timeout", 0, "Per-request timeout in seconds")
	concurrencyFlag = flag.Int("concurrency", 0, "Batch translation concurrency")
	preserveCase    = flag.Bool("preserve-case", false, "Carry the matched term's casing onto its replacement")
	capitalize      = flag.Bool("capitalize", false, "Capitalize sentence starts in the final text")
	listTermsFlag   = flag.Bool("list-terms", false, "List the terms in the terminology file and exit")
	validateFlag    = flag.Bool("validate-terms", false, "Validate the terminology file and exit")
	exportFlag      = flag.String("export", "", "Export the terminology file to PATH (.json or .csv) and exit")
	sampleFlag      = flag.String("sample", "", "Write a sample terminology CSV to PATH and exit")
	debugFlag       = flag.Bool("debug", false, "Show pipeline stages and debug logs")
	quietFlag       = flag.Bool("quiet", false, "Only output the translation")
)

// printHelp displays the help information for command line usage.
func printHelp() {
	fmt.Println("ghana-translator - terminology-controlled machine translation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ghana-translator [options] <text>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -target <code>        Target language code (e.g. ak, ee, gaa) - required")
	fmt.Println("  -source <code>        Source language code (default: en)")
	fmt.Println("  -terminology <path>   Terminology CSV file with term,translation columns")
	fmt.Println("  -file <path>          Input file with one text per line (batch mode)")
	fmt.Println("  -output <path>        Output file path (default: stdout)")
	fmt.Println("  -engine <name>        Translation engine: google (default) or llm")
	fmt.Println("  -timeout <seconds>    Per-request timeout")
	fmt.Println("  -concurrency <n>      Batch translation concurrency")
	fmt.Println("  -preserve-case        Carry the matched term's casing onto its replacement")
	fmt.Println("  -capitalize           Capitalize sentence starts in the final text")
	fmt.Println("  -list-terms           List the terms in the terminology file and exit")
	fmt.Println("  -validate-terms       Validate the terminology file and exit")
	fmt.Println("  -export <path>        Export the terminology file to .json or .csv and exit")
	fmt.Println("  -sample <path>        Write a sample terminology CSV and exit")
	fmt.Println("  -debug                Show pipeline stages and debug logs")
	fmt.Println("  -quiet                Only output the translation")
	fmt.Println("  -h, -help             Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ghana-translator -target ak -terminology terms.csv \"I want to buy a house\"")
	fmt.Println("  ghana-translator -target ak \"Hello world\"")
	fmt.Println("  ghana-translator -target ak -terminology terms.csv -file input.txt -output out.txt")
	fmt.Println("  ghana-translator -source es -target en \"Hola mundo\"")
	fmt.Println("  ghana-translator -terminology terms.csv -list-terms")
	fmt.Println("  ghana-translator -sample sample_terminology.csv")
	fmt.Println()
	fmt.Println("Flags must come before the text to translate.")
}

// getTranslationInput returns the literal text or batch file path from
// the parsed flags. Exactly one input source must be provided.
func getTranslationInput(args []string, file string) (string, bool, error) {
	text := strings.TrimSpace(strings.Join(args, " "))

	if text != "" && file != "" {
		return "", false, fmt.Errorf("provide either literal text or -file, not both")
	}
	if text == "" && file == "" {
		return "", false, fmt.Errorf("nothing to translate: provide text or -file")
	}
	return text, file != "", nil
}

// fatalf prints an error to stderr and exits non-zero.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Usage = printHelp
	flag.Parse()

	cm, err := config.NewConfigManager("")
	if err != nil {
		fatalf("%v", err)
	}
	if err := cm.Load(); err != nil {
		fatalf("%v", err)
	}

	initLogging(cm.GetConfig())
	defer logger.Close()

	// Terminology utility modes run without a translation engine
	if *sampleFlag != "" {
		runWriteSampleCLI(*sampleFlag)
		return
	}
	if *listTermsFlag || *validateFlag || *exportFlag != "" {
		runTerminologyCLI()
		return
	}

	text, isBatch, err := getTranslationInput(flag.Args(), *fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printHelp()
		os.Exit(1)
	}
	if *targetFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: -target is required\n\n")
		printHelp()
		os.Exit(1)
	}

	ctx := context.Background()
	engine, err := buildEngine(ctx, cm)
	if err != nil {
		fatalf("%v", err)
	}

	if !*quietFlag {
		fmt.Printf("Translating %s -> %s\n",
			langcodes.DisplayName(engine.SrcLang()), langcodes.DisplayName(engine.DestLang()))
	}
	if !langcodes.IsSupported(*targetFlag) {
		logger.Warn("target language may not be supported by the service",
			logger.String("target", *targetFlag))
	}

	if isBatch {
		runBatchTranslationCLI(ctx, engine, *fileFlag, *outputFlag)
	} else {
		runTranslationCLI(ctx, engine, text, *outputFlag)
	}
}

// initLogging configures the global logger from config and flags.
func initLogging(cfg *config.Config) {
	logCfg := &logger.Config{
		LogFilePath:   cfg.Log.File,
		MaxFileSize:   cfg.Log.MaxFileSize,
		MaxBackups:    cfg.Log.MaxBackups,
		Level:         logger.ParseLevel(cfg.Log.Level),
		EnableConsole: cfg.Log.EnableConsole && !*quietFlag,
	}
	if *debugFlag {
		logCfg.Level = logger.LevelDebug
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
}

// buildEngine assembles the translation engine from flags and config.
func buildEngine(ctx context.Context, cm *config.ConfigManager) (*translator.Engine, error) {
	cfg := cm.GetConfig()

	timeout := time.Duration(cm.GetTimeoutSeconds()) * time.Second
	if *timeoutFlag > 0 {
		timeout = time.Duration(*timeoutFlag) * time.Second
	}
	concurrency := cm.GetConcurrency()
	if *concurrencyFlag > 0 {
		concurrency = *concurrencyFlag
	}

	engineName := cm.GetEngine()
	if *engineFlag != "" {
		engineName = *engineFlag
	}

	var client translator.Client
	switch engineName {
	case "google":
		client = translator.NewGoogleClient(cfg.GoogleAPIURL, timeout, cfg.RequestsPerSecond)
	case "llm":
		llmClient, err := translator.NewLLMClient(ctx, cm.GetLLMAPIKey(), cm.GetLLMBaseURL(), cm.GetLLMModel())
		if err != nil {
			return nil, err
		}
		client = llmClient
	default:
		return nil, fmt.Errorf("unknown engine %q (expected google or llm)", engineName)
	}

	var table *terminology.Table
	if *terminologyFlag != "" {
		var err error
		table, err = terminology.Load(*terminologyFlag)
		if err != nil {
			return nil, err
		}
		if !*quietFlag {
			fmt.Printf("Loaded %d terms from %s\n", table.Len(), *terminologyFlag)
		}
	} else {
		logger.Debug("no terminology provided, translating in pass-through mode")
	}

	return translator.NewEngine(translator.EngineConfig{
		Client:              client,
		Table:               table,
		SrcLang:             *sourceFlag,
		DestLang:            *targetFlag,
		Timeout:             timeout,
		Concurrency:         concurrency,
		PreserveTermCase:    *preserveCase,
		CapitalizeSentences: *capitalize,
	})
}

// runTranslationCLI translates a single text and writes the result.
func runTranslationCLI(ctx context.Context, engine *translator.Engine, text, outputPath string) {
	result, err := engine.Translate(ctx, text)
	if err != nil {
		fatalf("%v", err)
	}

	if *debugFlag && !*quietFlag {
		printResultDetail(result)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Text+"\n"), 0644); err != nil {
			fatalf("failed to write output file: %v", err)
		}
		if !*quietFlag {
			fmt.Printf("Translation saved to %s\n", outputPath)
		}
		return
	}

	if *quietFlag {
		fmt.Println(result.Text)
		return
	}

	fmt.Printf("Original:    %s\n", result.Original)
	fmt.Printf("Translation: %s\n", result.Text)
	if result.ReplacementsCount > 0 {
		fmt.Printf("Terms replaced: %d\n", result.ReplacementsCount)
	}
}

// runBatchTranslationCLI translates a file line by line and writes one
// result per line, in input order. Failed items become [ERROR] lines;
// the run fails only when every item failed.
func runBatchTranslationCLI(ctx context.Context, engine *translator.Engine, inputPath, outputPath string) {
	f, err := os.Open(inputPath)
	if err != nil {
		fatalf("cannot read input file: %v", err)
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		fatalf("cannot read input file: %v", err)
	}
	if len(texts) == 0 {
		fatalf("input file %s contains no text", inputPath)
	}

	if !*quietFlag {
		fmt.Printf("Loaded %d lines from %s\n", len(texts), inputPath)
	}

	results := engine.TranslateBatch(ctx, texts)

	outputLines := make([]string, len(results))
	failures := 0
	for i, br := range results {
		if br.Err != nil {
			outputLines[i] = fmt.Sprintf("[ERROR] %v", br.Err)
			failures++
			continue
		}
		outputLines[i] = br.Result.Text
		if *debugFlag && !*quietFlag {
			fmt.Printf("\n[%d/%d] %s\n", i+1, len(results), br.Result.Original)
			fmt.Printf("    -> %s\n", br.Result.Text)
			fmt.Printf("    Terms replaced: %d\n", br.Result.ReplacementsCount)
		}
	}

	outputText := strings.Join(outputLines, "\n") + "\n"
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(outputText), 0644); err != nil {
			fatalf("failed to write output file: %v", err)
		}
		if !*quietFlag {
			fmt.Printf("Translations saved to %s\n", outputPath)
		}
	} else {
		fmt.Print(outputText)
	}

	if failures == len(results) {
		fmt.Fprintf(os.Stderr, "Error: all %d items failed\n", failures)
		os.Exit(1)
	}
	if failures > 0 && !*quietFlag {
		fmt.Printf("Completed with %d of %d items failed\n", failures, len(results))
	}
}

// printResultDetail prints every pipeline stage of a result.
func printResultDetail(result *translator.Result) {
	fmt.Printf("Original:       %s\n", result.Original)
	fmt.Printf("Preprocessed:   %s\n", result.Preprocessed)
	fmt.Printf("Service output: %s\n", result.ServiceOutput)
	fmt.Printf("Final:          %s\n", result.Text)
	fmt.Printf("Terms replaced: %d %v\n", result.ReplacementsCount, result.ReplacedTerms)
	fmt.Printf("Elapsed:        %.2fs\n", result.ElapsedSeconds)
}

// runWriteSampleCLI writes the built-in sample terminology file.
func runWriteSampleCLI(path string) {
	if err := terminology.WriteSample(path); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Sample terminology saved to %s\n", path)
}

// runTerminologyCLI handles -list-terms, -validate-terms and -export.
func runTerminologyCLI() {
	if *terminologyFlag == "" {
		fatalf("-terminology is required for terminology operations")
	}

	modes := 0
	if *listTermsFlag {
		modes++
	}
	if *validateFlag {
		modes++
	}
	if *exportFlag != "" {
		modes++
	}
	if modes > 1 {
		fatalf("use only one of -list-terms, -validate-terms, -export")
	}

	if *validateFlag {
		verdict, err := terminology.Validate(*terminologyFlag)
		fmt.Println(verdict)
		if err != nil {
			os.Exit(1)
		}
		return
	}

	table, err := terminology.Load(*terminologyFlag)
	if err != nil {
		fatalf("%v", err)
	}

	if *listTermsFlag {
		fmt.Printf("%d terms in %s:\n", table.Len(), *terminologyFlag)
		for _, entry := range table.Entries() {
			fmt.Printf("  %s -> %s\n", entry.Key, entry.Replacement)
		}
		return
	}

	out, err := os.Create(*exportFlag)
	if err != nil {
		fatalf("cannot create export file: %v", err)
	}
	defer out.Close()

	if strings.EqualFold(filepath.Ext(*exportFlag), ".json") {
		err = table.ExportJSON(out)
	} else {
		err = table.ExportCSV(out)
	}
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Terminology exported to %s\n", *exportFlag)
}
