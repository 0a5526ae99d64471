package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"language-companion-api/models"
)

type fakeStore struct {
	mu      sync.Mutex
	words   []models.Word
	saved   []models.Word
	saveErr error
	loadErr error
}

func (f *fakeStore) GetWordsByUser(userID int) ([]models.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	var out []models.Word
	for _, w := range f.words {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveWord(word *models.Word) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *word)
	return nil
}

func testWords(userID, n int) []models.Word {
	words := make([]models.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, models.Word{
			ID:         fmt.Sprintf("word-%d", i),
			UserID:     userID,
			Text:       fmt.Sprintf("word%d", i),
			Definition: fmt.Sprintf("definition %d", i),
			Status:     models.StatusUnknown,
		})
	}
	return words
}

func newTestManager(store WordStore) *Manager {
	return NewManager(store, rand.New(rand.NewSource(1)))
}

func TestStartSessionNoEligibleWords(t *testing.T) {
	store := &fakeStore{}

	_, err := newTestManager(store).StartSession(1, 5)
	require.ErrorIs(t, err, ErrNoWordsAvailable)

	// Known words are not eligible either.
	store.words = []models.Word{{ID: "k", UserID: 1, Text: "x", Status: models.StatusKnown}}
	_, err = newTestManager(store).StartSession(1, 1)
	require.ErrorIs(t, err, ErrNoWordsAvailable)
}

func TestStartSessionRejectsNonPositiveCount(t *testing.T) {
	store := &fakeStore{words: testWords(1, 3)}
	manager := newTestManager(store)

	_, err := manager.StartSession(1, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoWordsAvailable)

	_, err = manager.StartSession(1, -2)
	require.Error(t, err)
}

func TestStartSessionTruncatesToPool(t *testing.T) {
	store := &fakeStore{words: testWords(1, 3)}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 10)
	require.NoError(t, err)
	assert.Len(t, session.Questions, 3)

	session, err = manager.StartSession(1, 2)
	require.NoError(t, err)
	assert.Len(t, session.Questions, 2)
}

func TestStartSessionExcludesKnownWords(t *testing.T) {
	words := testWords(1, 4)
	words[0].Status = models.StatusKnown
	store := &fakeStore{words: words}

	session, err := newTestManager(store).StartSession(1, 10)
	require.NoError(t, err)
	require.Len(t, session.Questions, 3)
	for _, q := range session.Questions {
		assert.NotEqual(t, "word-0", q.WordID)
	}
}

func TestStartSessionPropagatesStoreError(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("disk on fire")}

	_, err := newTestManager(store).StartSession(1, 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoWordsAvailable)
}

func TestSameSeedSameSession(t *testing.T) {
	store := &fakeStore{words: testWords(1, 8)}

	a, err := NewManager(store, rand.New(rand.NewSource(99))).StartSession(1, 8)
	require.NoError(t, err)
	b, err := NewManager(store, rand.New(rand.NewSource(99))).StartSession(1, 8)
	require.NoError(t, err)

	require.Len(t, b.Questions, len(a.Questions))
	for i := range a.Questions {
		assert.Equal(t, a.Questions[i].WordID, b.Questions[i].WordID)
		assert.Equal(t, a.Questions[i].QuestionType, b.Questions[i].QuestionType)
	}
}

func TestSubmitAnswerAdvancesAndKeepsInvariant(t *testing.T) {
	store := &fakeStore{words: testWords(1, 4)}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		question, err := manager.CurrentQuestion(session.ID)
		require.NoError(t, err)
		require.NotNil(t, question)

		result, err := manager.SubmitAnswer(session.ID, question.CorrectAnswer, 1200)
		require.NoError(t, err)
		assert.True(t, result.IsCorrect)

		live := manager.SessionResults(session.ID)
		require.NotNil(t, live)
		assert.Len(t, live.Answers, i+1)

		if i < 3 {
			require.NotNil(t, result.NextQuestion)
			assert.False(t, result.SessionCompleted)
		} else {
			assert.Nil(t, result.NextQuestion)
			assert.True(t, result.SessionCompleted)
			require.NotNil(t, result.Results)
		}
	}
}

func TestCompletedSessionIsEvicted(t *testing.T) {
	store := &fakeStore{words: testWords(1, 2)}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		question, err := manager.CurrentQuestion(session.ID)
		require.NoError(t, err)
		_, err = manager.SubmitAnswer(session.ID, question.CorrectAnswer, 0)
		require.NoError(t, err)
	}

	_, err = manager.CurrentQuestion(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.SubmitAnswer(session.ID, "anything", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The summary survives the eviction.
	results := manager.SessionResults(session.ID)
	require.NotNil(t, results)
	assert.Equal(t, 2, results.TotalQuestions)
	assert.Equal(t, 2, results.CorrectAnswers)
	assert.Equal(t, 1.0, results.Accuracy)
	assert.NotNil(t, results.CompletedAt)
}

func TestUnknownSessionID(t *testing.T) {
	manager := newTestManager(&fakeStore{words: testWords(1, 1)})

	_, err := manager.CurrentQuestion("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.SubmitAnswer("nope", "x", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Nil(t, manager.SessionResults("nope"))
}

func TestSubmitAnswerToExhaustedSession(t *testing.T) {
	store := &fakeStore{words: testWords(1, 1)}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 1)
	require.NoError(t, err)

	// Force the exhausted-but-not-evicted state the guard exists for.
	manager.mutex.Lock()
	entry := manager.active[session.ID]
	entry.session.Position = len(entry.session.Questions)
	manager.mutex.Unlock()

	_, err = manager.SubmitAnswer(session.ID, "x", 0)
	assert.ErrorIs(t, err, ErrNoCurrentQuestion)
}

func TestMasteryPersistedThroughStore(t *testing.T) {
	store := &fakeStore{words: testWords(1, 1)}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 1)
	require.NoError(t, err)

	question, err := manager.CurrentQuestion(session.ID)
	require.NoError(t, err)
	result, err := manager.SubmitAnswer(session.ID, question.CorrectAnswer, 0)
	require.NoError(t, err)
	assert.Empty(t, result.PersistWarning)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, 1, saved.ReviewCount)
	assert.Equal(t, 1, saved.CorrectCount)
	assert.Equal(t, models.StatusLearning, saved.Status)
	require.NotNil(t, saved.LastReviewedAt)
}

func TestSaveFailureWarnsButAdvances(t *testing.T) {
	store := &fakeStore{words: testWords(1, 2), saveErr: errors.New("disk full")}
	manager := newTestManager(store)

	session, err := manager.StartSession(1, 2)
	require.NoError(t, err)

	question, err := manager.CurrentQuestion(session.ID)
	require.NoError(t, err)
	result, err := manager.SubmitAnswer(session.ID, question.CorrectAnswer, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, result.PersistWarning)
	assert.True(t, result.IsCorrect)

	// The session advanced in spite of the failed save.
	live := manager.SessionResults(session.ID)
	require.NotNil(t, live)
	assert.Len(t, live.Answers, 1)
}

func TestEndToEndQuiz(t *testing.T) {
	store := &fakeStore{words: []models.Word{
		{ID: "w-cat", UserID: 9, Text: "cat", Definition: "猫", Status: models.StatusUnknown},
		{ID: "w-dog", UserID: 9, Text: "dog", Definition: "犬", Status: models.StatusUnknown},
	}}
	manager := newTestManager(store)

	session, err := manager.StartSession(9, 2)
	require.NoError(t, err)
	require.Len(t, session.Questions, 2)

	for {
		question, err := manager.CurrentQuestion(session.ID)
		if errors.Is(err, ErrSessionNotFound) {
			break
		}
		require.NoError(t, err)
		require.NotNil(t, question)

		result, err := manager.SubmitAnswer(session.ID, question.CorrectAnswer, 800)
		require.NoError(t, err)
		assert.True(t, result.IsCorrect)
		if result.SessionCompleted {
			break
		}
	}

	results := manager.SessionResults(session.ID)
	require.NotNil(t, results)
	assert.Equal(t, 2, results.TotalQuestions)
	assert.Equal(t, 2, results.CorrectAnswers)
	assert.Equal(t, 1.0, results.Accuracy)
	assert.Len(t, results.Answers, 2)

	_, err = manager.CurrentQuestion(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	words := append(testWords(1, 5), testWords(2, 5)...)
	store := &fakeStore{words: words}
	manager := NewManager(store, nil)

	var wg sync.WaitGroup
	for _, userID := range []int{1, 2} {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			session, err := manager.StartSession(userID, 5)
			if err != nil {
				t.Errorf("start session for user %d: %v", userID, err)
				return
			}
			for {
				question, err := manager.CurrentQuestion(session.ID)
				if err != nil || question == nil {
					return
				}
				if _, err := manager.SubmitAnswer(session.ID, question.CorrectAnswer, 0); err != nil {
					return
				}
			}
		}(userID)
	}
	wg.Wait()
}
