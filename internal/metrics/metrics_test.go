package metrics

import (
	"testing"
	"time"
)

func TestCollector_Counters(t *testing.T) {
	c := New()

	c.RecordRequest()
	c.RecordRequest()
	c.RecordProbeCompleted()
	c.RecordFinding()
	c.RecordFalsePositive()
	c.RecordBaselineRejection()
	c.RecordCandidates(100)
	c.RecordBytes(4096)
	c.RecordTruncatedBody()

	s := c.Snapshot()
	if s.RequestsTotal != 2 {
		t.Errorf("RequestsTotal = %d, want 2", s.RequestsTotal)
	}
	if s.ProbesCompleted != 1 {
		t.Errorf("ProbesCompleted = %d, want 1", s.ProbesCompleted)
	}
	if s.FindingsTotal != 1 {
		t.Errorf("FindingsTotal = %d, want 1", s.FindingsTotal)
	}
	if s.FalsePositives != 1 {
		t.Errorf("FalsePositives = %d, want 1", s.FalsePositives)
	}
	if s.BaselineRejections != 1 {
		t.Errorf("BaselineRejections = %d, want 1", s.BaselineRejections)
	}
	if s.CandidatesTotal != 100 {
		t.Errorf("CandidatesTotal = %d, want 100", s.CandidatesTotal)
	}
	if s.BytesTotal != 4096 {
		t.Errorf("BytesTotal = %d, want 4096", s.BytesTotal)
	}
	if s.TruncatedBodies != 1 {
		t.Errorf("TruncatedBodies = %d, want 1", s.TruncatedBodies)
	}
}

func TestCollector_ErrorBreakdown(t *testing.T) {
	c := New()

	c.RecordError("timeout")
	c.RecordError("timeout")
	c.RecordError("transport")

	s := c.Snapshot()
	if s.ErrorsTotal != 3 {
		t.Errorf("ErrorsTotal = %d, want 3", s.ErrorsTotal)
	}
	if s.ErrorCounts["timeout"] != 2 {
		t.Errorf("ErrorCounts[timeout] = %d, want 2", s.ErrorCounts["timeout"])
	}
	if s.ErrorCounts["transport"] != 1 {
		t.Errorf("ErrorCounts[transport] = %d, want 1", s.ErrorCounts["transport"])
	}
}

func TestCollector_StatusCodes(t *testing.T) {
	c := New()

	c.RecordStatusCode(200)
	c.RecordStatusCode(200)
	c.RecordStatusCode(404)

	s := c.Snapshot()
	if s.StatusCodes[200] != 2 {
		t.Errorf("StatusCodes[200] = %d, want 2", s.StatusCodes[200])
	}
	if s.StatusCodes[404] != 1 {
		t.Errorf("StatusCodes[404] = %d, want 1", s.StatusCodes[404])
	}
}

func TestCollector_ResponseTimes(t *testing.T) {
	c := New()

	c.RecordResponseTime(100 * time.Millisecond)
	c.RecordResponseTime(300 * time.Millisecond)

	avg := c.GetAverageResponseTime()
	if avg != 200*time.Millisecond {
		t.Errorf("average = %v, want 200ms", avg)
	}

	s := c.Snapshot()
	if s.ResponseTimeHist[3] != 2 {
		t.Errorf("histogram bucket 3 = %d, want 2", s.ResponseTimeHist[3])
	}
}

func TestCollector_Gauges(t *testing.T) {
	c := New()

	c.SetQueueDepth(42)
	c.SetActiveWorkers(8)
	c.SetConcurrencyTarget(12)

	s := c.Snapshot()
	if s.QueueDepth != 42 {
		t.Errorf("QueueDepth = %d, want 42", s.QueueDepth)
	}
	if s.ActiveWorkers != 8 {
		t.Errorf("ActiveWorkers = %d, want 8", s.ActiveWorkers)
	}
	if s.ConcurrencyTarget != 12 {
		t.Errorf("ConcurrencyTarget = %d, want 12", s.ConcurrencyTarget)
	}
}

func TestSnapshot_CacheHitRate(t *testing.T) {
	c := New()

	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	s := c.Snapshot()
	if got := s.CacheHitRate(); got != 0.75 {
		t.Errorf("CacheHitRate = %f, want 0.75", got)
	}
}

func TestSnapshot_ErrorRate(t *testing.T) {
	c := New()

	s := c.Snapshot()
	if s.ErrorRate() != 0 {
		t.Error("empty collector should have zero error rate")
	}

	c.RecordRequest()
	c.RecordRequest()
	c.RecordError("timeout")

	s = c.Snapshot()
	if got := s.ErrorRate(); got != 0.5 {
		t.Errorf("ErrorRate = %f, want 0.5", got)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := New()

	c.RecordRequest()
	c.RecordFinding()
	c.RecordError("timeout")
	c.Reset()

	s := c.Snapshot()
	if s.RequestsTotal != 0 || s.FindingsTotal != 0 || s.ErrorsTotal != 0 {
		t.Error("Reset should zero all counters")
	}
	if len(s.ErrorCounts) != 0 {
		t.Error("Reset should clear error breakdown")
	}
}
