// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Seeder populates a database with demo meetings so the chat commands have
// something to retrieve against.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/recallit"
	"github.com/poiesic/recallit/core"
)

type demoMeeting struct {
	title      string
	daysAgo    int
	transcript string
}

var demoMeetings = []demoMeeting{
	{
		title:   "Q3 Launch Planning",
		daysAgo: 14,
		transcript: "Alice: We need to lock the launch date before the end of the week.\n" +
			"Bob: The payment integration is still blocked on the vendor sandbox.\n" +
			"Alice: Then let's plan for the last Friday of the month and flag payments as at-risk.\n" +
			"Carol: Marketing needs two weeks of lead time for the announcement, so I need the date confirmed by Monday.\n" +
			"Bob: I can commit to unblocking the sandbox by Wednesday.\n" +
			"Alice: Agreed. Launch is the last Friday, payments go out in a fast-follow if the sandbox slips.\n",
	},
	{
		title:   "Storage Architecture Review",
		daysAgo: 7,
		transcript: "Dmitri: The current setup duplicates every transcript across three tables.\n" +
			"Elena: We should consolidate into a single chunk table keyed by meeting and index.\n" +
			"Dmitri: That also simplifies the vector cleanup when a meeting is deleted.\n" +
			"Elena: I'll draft the migration and we review it Thursday.\n",
	},
	{
		title:   "Weekly Standup",
		daysAgo: 1,
		transcript: "Alice: The launch announcement draft went to legal yesterday.\n" +
			"Bob: Vendor sandbox is unblocked, payment integration is back on track.\n" +
			"Carol: I still need final screenshots for the press kit by Friday.\n" +
			"Alice: Bob, can you get Carol staging access today?\n" +
			"Bob: Done right after this call.\n",
	},
}

var (
	dbPath = flag.String("db", "./recallit_db", "path to BadgerDB database directory")
	userID = flag.String("user", "demo-user", "user id to own the seeded meetings")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := recallit.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for _, demo := range demoMeetings {
		meetingID := uuid.NewString()

		err := db.MeetingRepository().PutMeeting(ctx, &core.Meeting{
			ID:        meetingID,
			UserID:    *userID,
			Title:     demo.title,
			StartedAt: time.Now().UTC().AddDate(0, 0, -demo.daysAgo),
		})
		if err != nil {
			panic(err)
		}

		result, err := pipeline.ProcessTranscript(ctx, meetingID, *userID, demo.transcript, demo.title)
		if err != nil {
			panic(err)
		}

		slog.Info("seeded meeting",
			"meetingID", meetingID, "title", demo.title, "chunks", result.ChunkCount)
	}

	slog.Info("seeding complete", "meetings", len(demoMeetings), "user", *userID)
}
