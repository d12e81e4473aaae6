package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/PentesterFlow/leftover/internal/generate"
)

func TestWorkQueue_TierOrdering(t *testing.T) {
	q := New(0)

	q.Push(generate.Candidate{URL: "http://x/brute", Tier: 3})
	q.Push(generate.Candidate{URL: "http://x/.env", Tier: 0})
	q.Push(generate.Candidate{URL: "http://x/app.bak", Tier: 2})

	want := []string{"http://x/.env", "http://x/app.bak", "http://x/brute"}
	for _, u := range want {
		c, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if c.URL != u {
			t.Errorf("Pop = %q, want %q", c.URL, u)
		}
	}
}

func TestWorkQueue_FIFOWithinTier(t *testing.T) {
	q := New(0)

	urls := []string{"http://x/a", "http://x/b", "http://x/c"}
	for _, u := range urls {
		q.Push(generate.Candidate{URL: u, Tier: 2})
	}

	for _, u := range urls {
		c, _ := q.Pop()
		if c.URL != u {
			t.Errorf("Pop = %q, want %q", c.URL, u)
		}
	}
}

func TestWorkQueue_EmptyPop(t *testing.T) {
	q := New(0)
	if _, err := q.Pop(); err != ErrQueueEmpty {
		t.Errorf("err = %v, want ErrQueueEmpty", err)
	}
}

func TestWorkQueue_Capacity(t *testing.T) {
	q := New(1)
	if err := q.Push(generate.Candidate{URL: "http://x/a"}); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if err := q.Push(generate.Candidate{URL: "http://x/b"}); err != ErrQueueFull {
		t.Errorf("err = %v, want ErrQueueFull", err)
	}
}

func TestWorkQueue_PopWaitBlocking(t *testing.T) {
	q := New(0)

	done := make(chan generate.Candidate)
	go func() {
		c, _ := q.PopWait()
		done <- c
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(generate.Candidate{URL: "http://x/late", Tier: 1})

	select {
	case c := <-done:
		if c.URL != "http://x/late" {
			t.Errorf("got %q", c.URL)
		}
	case <-time.After(time.Second):
		t.Fatal("PopWait did not wake on Push")
	}
}

func TestWorkQueue_CloseDrains(t *testing.T) {
	q := New(0)
	q.Push(generate.Candidate{URL: "http://x/a"})
	q.Close()

	if err := q.Push(generate.Candidate{URL: "http://x/b"}); err != ErrQueueClosed {
		t.Errorf("Push after close: err = %v, want ErrQueueClosed", err)
	}

	// Queued work survives Close.
	if c, err := q.PopWait(); err != nil || c.URL != "http://x/a" {
		t.Errorf("PopWait = (%q, %v), want queued candidate", c.URL, err)
	}

	if _, err := q.PopWait(); err != ErrQueueClosed {
		t.Errorf("drained PopWait: err = %v, want ErrQueueClosed", err)
	}
}

func TestWorkQueue_CloseWakesWaiters(t *testing.T) {
	q := New(0)

	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := q.PopWait()
			errs <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.Close()

	for i := 0; i < 3; i++ {
		select {
		case err := <-errs:
			if err != ErrQueueClosed {
				t.Errorf("err = %v, want ErrQueueClosed", err)
			}
		case <-time.After(time.Second):
			t.Fatal("waiter not woken by Close")
		}
	}
}

func TestWorkQueue_Concurrent(t *testing.T) {
	q := New(0)

	var wg sync.WaitGroup
	const producers, perProducer = 4, 50

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(generate.Candidate{URL: "http://x/p", Tier: p % 3})
			}
		}(p)
	}

	consumed := make(chan int)
	go func() {
		n := 0
		for {
			if _, err := q.PopWait(); err != nil {
				consumed <- n
				return
			}
			n++
		}
	}()

	wg.Wait()
	q.Close()

	if n := <-consumed; n != producers*perProducer {
		t.Errorf("consumed %d, want %d", n, producers*perProducer)
	}
}
