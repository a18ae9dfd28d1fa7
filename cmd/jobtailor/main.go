package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"jobtailor/internal/api"
	"jobtailor/internal/auth"
	"jobtailor/internal/config"
	"jobtailor/internal/dto"
	"jobtailor/internal/model"
)

const defaultPageLimit = 30

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Interrupted, shutting down...")
		cancel()
	}()

	client := api.NewClient(config.LoadAPIConfig())

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "signup":
		err = runSignup(ctx, client, args)
	case "login":
		err = runLogin(ctx, client, args)
	case "google-login":
		err = runGoogleLogin(ctx, client)
	case "logout":
		err = auth.ClearSession()
	case "whoami":
		err = runWhoami(ctx, client)
	case "start":
		err = runStart(ctx, client, args)
	case "watch":
		err = runWatchCommand(ctx, client, args)
	case "list":
		err = runList(ctx, client, args)
	case "search":
		err = runSearch(ctx, client, args)
	case "get":
		err = runGet(ctx, client, args)
	case "delete":
		err = runDelete(ctx, client, args)
	case "stats":
		err = runStats(ctx, client)
	case "upload-resume":
		err = runUploadResume(ctx, client, args)
	case "save-resume":
		err = runSaveResume(ctx, client, args)
	case "update-resume":
		err = runUpdateResume(ctx, client, args)
	case "update-cover-letter":
		err = runUpdateCoverLetter(ctx, client, args)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("Usage: jobtailor <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  signup               Create an account (-email, -password)")
	fmt.Println("  login                Sign in with credentials (-email, -password)")
	fmt.Println("  google-login         Sign in through Google in the browser")
	fmt.Println("  logout               Forget the saved session")
	fmt.Println("  whoami               Show the signed-in user")
	fmt.Println("  start                Start tailoring for a job posting (-role, -company, -description-file)")
	fmt.Println("  watch                Follow a running pipeline live (-id)")
	fmt.Println("  list                 List job applications (-offset, -limit)")
	fmt.Println("  search               Search job applications (-term)")
	fmt.Println("  get                  Show one job application (-id)")
	fmt.Println("  delete               Delete a job application (-id)")
	fmt.Println("  stats                Show application stats")
	fmt.Println("  upload-resume        Upload a resume file for parsing (-file)")
	fmt.Println("  save-resume          Save a structured resume (-file, JSON)")
	fmt.Println("  update-resume        Replace a generated resume (-id, -file)")
	fmt.Println("  update-cover-letter  Replace a generated cover letter (-id, -file)")
}

// requireSession loads the saved token into the client.
func requireSession(client *api.Client) error {
	session, err := auth.LoadSession()
	if err != nil {
		return err
	}
	client.SetToken(session.Token)
	return nil
}

func runSignup(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("signup: -email and -password are required")
	}
	if err := client.Signup(ctx, *email, *password); err != nil {
		return err
	}
	log.Println("Account created. Run `jobtailor login` to sign in.")
	return nil
}

func runLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("login: -email and -password are required")
	}
	resp, err := client.CredentialsLogin(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := auth.SaveSession(&auth.Session{Token: resp.AccessToken, Email: *email}); err != nil {
		return err
	}
	log.Println("Signed in.")
	return nil
}

func runGoogleLogin(ctx context.Context, client *api.Client) error {
	login := auth.NewGoogleLogin(client, config.LoadGoogleConfig())
	resp, err := login.Run(ctx)
	if err != nil {
		return err
	}
	if err := auth.SaveSession(&auth.Session{Token: resp.AccessToken}); err != nil {
		return err
	}
	log.Println("Signed in with Google.")
	return nil
}

func runWhoami(ctx context.Context, client *api.Client) error {
	if err := requireSession(client); err != nil {
		return err
	}
	user, err := client.GetUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func runStart(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	role := fs.String("role", "", "job role / title")
	company := fs.String("company", "", "company name")
	descriptionFile := fs.String("description-file", "", "file with the job description text")
	follow := fs.Bool("follow", false, "watch the pipeline after starting")
	fs.Parse(args)
	if *role == "" || *company == "" || *descriptionFile == "" {
		return fmt.Errorf("start: -role, -company and -description-file are required")
	}
	if err := requireSession(client); err != nil {
		return err
	}

	description, err := os.ReadFile(*descriptionFile)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}

	snapshot, err := client.StartGeneration(ctx, dto.StartGenerationRequest{
		JobRole:        *role,
		JobDescription: string(description),
		Company:        *company,
	})
	if err != nil {
		return err
	}
	log.Printf("Generation started for %q at %s (id %s)", snapshot.JobTitle, snapshot.CompanyName, snapshot.ID)

	if *follow {
		return runWatch(ctx, client, snapshot.ID)
	}
	log.Printf("Follow it with: jobtailor watch -id %s", snapshot.ID)
	return nil
}

func runWatchCommand(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	id := fs.String("id", "", "job application id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("watch: -id is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	return runWatch(ctx, client, *id)
}

func runList(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	offset := fs.Int("offset", 0, "pagination offset")
	limit := fs.Int("limit", defaultPageLimit, "page size")
	fs.Parse(args)
	if err := requireSession(client); err != nil {
		return err
	}
	page, err := client.ListJobApplications(ctx, *offset, *limit)
	if err != nil {
		return err
	}
	printPreviews(page)
	return nil
}

func runSearch(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	term := fs.String("term", "", "search term")
	offset := fs.Int("offset", 0, "pagination offset")
	limit := fs.Int("limit", defaultPageLimit, "page size")
	fs.Parse(args)
	if *term == "" {
		return fmt.Errorf("search: -term is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	page, err := client.SearchJobApplications(ctx, *term, *offset, *limit)
	if err != nil {
		return err
	}
	printPreviews(page)
	return nil
}

func printPreviews(page *model.PaginatedJobApplicationPreviews) {
	for _, item := range page.Items {
		fmt.Printf("%s  %-28s %-20s %s\n", item.ID, item.JobTitle, item.CompanyName, item.ResumeGenerationStatus)
	}
	fmt.Printf("%d of %d shown", len(page.Items), page.Total)
	if page.HasNext {
		fmt.Print(" (more available, raise -offset)")
	}
	fmt.Println()
}

func runGet(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.String("id", "", "job application id")
	asJSON := fs.Bool("json", false, "print the raw snapshot as JSON")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("get: -id is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	snapshot, err := client.GetJobApplication(ctx, *id)
	if err != nil {
		return err
	}
	if *asJSON {
		encoded, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}
	printSnapshot(snapshot)
	return nil
}

func runDelete(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "job application id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("delete: -id is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	if err := client.DeleteJobApplication(ctx, *id); err != nil {
		return err
	}
	log.Printf("Deleted %s", *id)
	return nil
}

func runStats(ctx context.Context, client *api.Client) error {
	if err := requireSession(client); err != nil {
		return err
	}
	stats, err := client.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total created:      %d\n", stats.TotalCreated)
	fmt.Printf("Created this month: %d\n", stats.CreatedThisMonth)
	fmt.Printf("Completed:          %d\n", stats.Completed)
	return nil
}

func runUploadResume(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("upload-resume", flag.ExitOnError)
	file := fs.String("file", "", "resume file to upload")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("upload-resume: -file is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open resume file: %w", err)
	}
	defer f.Close()
	if err := client.UploadResume(ctx, filepath.Base(*file), f); err != nil {
		return err
	}
	log.Println("Resume uploaded, the backend is extracting it.")
	return nil
}

func runSaveResume(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("save-resume", flag.ExitOnError)
	file := fs.String("file", "", "structured resume JSON file")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("save-resume: -file is required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	resume, err := readResumeFile(*file)
	if err != nil {
		return err
	}
	if _, err := client.SaveResume(ctx, resume); err != nil {
		return err
	}
	log.Println("Resume saved.")
	return nil
}

func runUpdateResume(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("update-resume", flag.ExitOnError)
	id := fs.String("id", "", "job application id")
	file := fs.String("file", "", "structured resume JSON file")
	fs.Parse(args)
	if *id == "" || *file == "" {
		return fmt.Errorf("update-resume: -id and -file are required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	resume, err := readResumeFile(*file)
	if err != nil {
		return err
	}
	if _, err := client.UpdateGeneratedResume(ctx, *id, resume); err != nil {
		return err
	}
	log.Println("Generated resume replaced.")
	return nil
}

func runUpdateCoverLetter(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("update-cover-letter", flag.ExitOnError)
	id := fs.String("id", "", "job application id")
	file := fs.String("file", "", "cover letter text file")
	fs.Parse(args)
	if *id == "" || *file == "" {
		return fmt.Errorf("update-cover-letter: -id and -file are required")
	}
	if err := requireSession(client); err != nil {
		return err
	}
	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read cover letter: %w", err)
	}
	if _, err := client.UpdateGeneratedCoverLetter(ctx, *id, string(content)); err != nil {
		return err
	}
	log.Println("Generated cover letter replaced.")
	return nil
}

func readResumeFile(path string) (*model.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume file: %w", err)
	}
	var resume model.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("parse resume JSON: %w", err)
	}
	return &resume, nil
}
