package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorderCounts(t *testing.T) {
	recorder := NewInMemory()

	recorder.IncUserRegistered()
	recorder.IncLoginSuccess()
	recorder.IncLoginFailure()
	recorder.IncLoginFailure()
	recorder.IncTaskCompleted()

	snap := recorder.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("users registered = %d", snap.UsersRegistered)
	}
	if snap.LoginSuccesses != 1 || snap.LoginFailures != 2 {
		t.Errorf("logins = %d/%d", snap.LoginSuccesses, snap.LoginFailures)
	}
	if snap.TasksCompleted != 1 {
		t.Errorf("tasks completed = %d", snap.TasksCompleted)
	}
	if snap.ProjectsCreated != 0 {
		t.Errorf("projects created = %d", snap.ProjectsCreated)
	}
}

func TestInMemoryRecorderConcurrent(t *testing.T) {
	recorder := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				recorder.IncProjectCreated()
			}
		}()
	}
	wg.Wait()

	if got := recorder.Snapshot().ProjectsCreated; got != 1000 {
		t.Fatalf("projects created = %d, want 1000", got)
	}
}
