package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobtailor/internal/api"
	"jobtailor/internal/model"
	"jobtailor/internal/projection"
	"jobtailor/internal/store"
	"jobtailor/internal/stream"
)

// runWatch is the terminal rendition of the live status view: a stream
// client writes snapshots into the store, and this loop re-projects and
// prints whatever changed. All derivation lives in the projection package;
// this is presentation only.
func runWatch(ctx context.Context, client *api.Client, id string) error {
	st := store.New()
	updates, cancelWatch := st.Watch()
	defer cancelWatch()

	sc := stream.New(client.BaseURL(), id, client.Token(), st)
	sc.Open(ctx)
	defer sc.Close()

	tracker := projection.NewTracker(projection.DefaultAdvanceDelay, func(next projection.PhaseID) {
		log.Printf("▶ moving on to %s", next)
	})
	defer tracker.Stop()

	var (
		lastLabel     string
		lastPhases    string
		lastConnected bool
		lastErrText   string
		lastRunning   int
	)

	log.Printf("Watching application %s (ctrl-c to stop)", id)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			if connected := st.Connected(); connected != lastConnected {
				lastConnected = connected
				if connected {
					log.Println("Stream connected")
				} else {
					log.Println("Stream disconnected, waiting for reconnect...")
				}
			}
			if err := st.Err(); err != nil && err.Error() != lastErrText {
				lastErrText = err.Error()
				log.Printf("Stream error: %v", err)
			}

			snapshot := st.Snapshot()
			if snapshot == nil {
				continue
			}

			if label := projection.CurrentStepLabel(snapshot); label != lastLabel {
				lastLabel = label
				log.Printf("Step: %s", label)
			}

			phases := projection.Phases(snapshot)
			tracker.Observe(phases)
			if line := phaseLine(phases); line != lastPhases {
				lastPhases = line
				log.Printf("Phases: %s", line)
			}

			activity := projection.DedupeToolExecutions(snapshot.Events)
			if len(activity.Running) != lastRunning {
				lastRunning = len(activity.Running)
				for _, entry := range activity.Running {
					log.Printf("  tool: %s", projection.ActivityMessage(&entry.Latest))
				}
			}

			switch snapshot.ResumeGenerationStatus {
			case model.GenerationCompleted:
				log.Println("Pipeline completed.")
				printSnapshot(snapshot)
				return nil
			case model.GenerationFailed:
				printSnapshot(snapshot)
				return fmt.Errorf("pipeline failed: %s", lastLabel)
			}
		}
	}
}

func phaseLine(phases []projection.Phase) string {
	parts := make([]string, 0, len(phases))
	for _, phase := range phases {
		parts = append(parts, fmt.Sprintf("%s=%s", phase.ID, phase.Status))
	}
	return strings.Join(parts, "  ")
}

func printSnapshot(s *model.JobApplicationSnapshot) {
	fmt.Printf("Application: %s\n", s.ID)
	fmt.Printf("Role:        %s at %s\n", s.JobTitle, s.CompanyName)
	fmt.Printf("Status:      %s\n", s.ResumeGenerationStatus)
	fmt.Printf("Step:        %s\n", projection.CurrentStepLabel(s))

	summary := projection.SummarizeResearch(s)
	if summary.Total > 0 {
		fmt.Printf("Research:    %d/%d categories done (%d%%)\n", summary.Completed, summary.Total, summary.ProgressPct)
	}
	if s.GeneratedResume != nil {
		fmt.Println("Resume:      generated")
	}
	if s.GeneratedCoverLetter != "" {
		fmt.Println("Cover letter: generated")
	}
}
