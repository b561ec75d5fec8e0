package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"basegraph.app/releasenotes/common/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LogFields", func() {
	It("merges newer values over existing ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			RunID:     logger.Ptr(int64(7)),
			Owner:     logger.Ptr("acme"),
			Component: "releasenotes.pipeline",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			Stage:     logger.Ptr("render"),
			Component: "releasenotes.render",
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.RunID).To(Equal(int64(7)))
		Expect(*fields.Owner).To(Equal("acme"))
		Expect(*fields.Stage).To(Equal("render"))
		Expect(fields.Component).To(Equal("releasenotes.render"))
	})

	It("returns empty fields for a bare context", func() {
		Expect(logger.GetLogFields(context.Background())).To(Equal(logger.LogFields{}))
	})
})

var _ = Describe("TraceHandler", func() {
	It("adds context fields to every record", func() {
		var buf bytes.Buffer
		log := slog.New(logger.NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			RunID:     logger.Ptr(int64(42)),
			Owner:     logger.Ptr("acme"),
			Repo:      logger.Ptr("widgets"),
			Component: "releasenotes.brain.synthesizer",
		})
		log.InfoContext(ctx, "synthesis started")

		var record map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
		Expect(record["run_id"]).To(BeEquivalentTo(42))
		Expect(record["owner"]).To(Equal("acme"))
		Expect(record["repo"]).To(Equal("widgets"))
		Expect(record["component"]).To(Equal("releasenotes.brain.synthesizer"))
		Expect(record).NotTo(HaveKey("trace_id"))
	})
})

var _ = Describe("ParseLevel", func() {
	DescribeTable("maps LOG_LEVEL values",
		func(in string, development bool, want slog.Level) {
			Expect(logger.ParseLevel(in, development)).To(Equal(want))
		},
		Entry("debug", "debug", false, slog.LevelDebug),
		Entry("upper-case warn", "WARN", false, slog.LevelWarn),
		Entry("error", "error", true, slog.LevelError),
		Entry("empty in development", "", true, slog.LevelDebug),
		Entry("empty elsewhere", "", false, slog.LevelInfo),
		Entry("unknown elsewhere", "verbose", false, slog.LevelInfo),
	)
})

var _ = Describe("Truncate", func() {
	It("leaves short strings alone", func() {
		Expect(logger.Truncate("abc", 5)).To(Equal("abc"))
	})

	It("cuts long strings and marks them", func() {
		Expect(logger.Truncate("abcdef", 3)).To(Equal("abc..."))
	})
})
