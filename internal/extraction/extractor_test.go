package extraction_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docextract/internal/domain"
	"docextract/internal/extraction"
	"docextract/internal/port"
	"docextract/mocks"
)

const ocrText = "Order Date: 01/15/2023\nName: John Doe\n| Item | Price |\nBook | $10"

// promptFor matches a backend request by a phrase unique to one kind's prompt.
func promptFor(phrase string) interface{} {
	return mock.MatchedBy(func(req port.CompletionRequest) bool {
		return strings.Contains(req.Prompt, phrase)
	})
}

const (
	entitiesPhrase   = "Extract the following entities"
	tablesPhrase     = "extract the main table"
	formFieldsPhrase = "extracting form fields"
	structurePhrase  = "extracting document structure"
)

func newExtractor(t *testing.T, backend port.CompletionBackend, cfg extraction.Config) *extraction.Extractor {
	t.Helper()
	tmpls, err := extraction.LoadTemplates("")
	require.NoError(t, err)
	return extraction.NewExtractor(backend, tmpls, cfg)
}

func TestExtractor_ExtractAll_TablesBackendErrorDegrades(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, promptFor(entitiesPhrase)).
		Return("```json\n{\"names\": [\"John Doe\"], \"dates\": [\"01/15/2023\"]}\n```", nil)
	backend.On("Complete", mock.Anything, promptFor(tablesPhrase)).
		Return("", domain.NewHTTPError("ollama", 500, "internal error", 0))
	backend.On("Complete", mock.Anything, promptFor(formFieldsPhrase)).
		Return(`{"form_fields": {"Name": "John Doe"}}`, nil)
	backend.On("Complete", mock.Anything, promptFor(structurePhrase)).
		Return(`{"sections": [{"heading": "Order", "content": "Book"}], "lists": [], "page_info": {"page_number": 1}}`, nil)

	ex := newExtractor(t, backend, extraction.Config{Temperature: 0.1})
	out := ex.ExtractAll(context.Background(), ocrText)

	assert.Equal(t, []string{"John Doe"}, out.Entities.Names)
	assert.Equal(t, []string{"01/15/2023"}, out.Entities.Dates)
	assert.Equal(t, domain.Tables{}, out.Tables)
	assert.Equal(t, domain.FormFields{"Name": "John Doe"}, out.FormFields)
	require.Len(t, out.Structure.Sections, 1)
	assert.Equal(t, 1, out.Structure.PageInfo.PageNumber)
	backend.AssertNumberOfCalls(t, "Complete", 4)
}

func TestExtractor_ExtractAll_MalformedOutputDegrades(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, promptFor(entitiesPhrase)).Return("I could not find any entities.", nil)
	backend.On("Complete", mock.Anything, promptFor(tablesPhrase)).Return(`{"headers":["Item","Price"],"rows":[["Book","$10"]]}`, nil)
	backend.On("Complete", mock.Anything, promptFor(formFieldsPhrase)).Return("```json```", nil)
	backend.On("Complete", mock.Anything, promptFor(structurePhrase)).Return(`{"sections": "none"}`, nil)

	ex := newExtractor(t, backend, extraction.Config{})
	out := ex.ExtractAll(context.Background(), ocrText)

	assert.Equal(t, domain.EmptyResult(domain.KindEntities), out.Entities)
	assert.Equal(t, domain.Tables{{Headers: []string{"Item", "Price"}, Rows: [][]string{{"Book", "$10"}}}}, out.Tables)
	assert.Equal(t, domain.FormFields{}, out.FormFields)
	assert.Equal(t, domain.EmptyResult(domain.KindStructure), out.Structure)
}

func TestExtractor_ExtractAll_SendsPerKindBudgets(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.AnythingOfType("port.CompletionRequest")).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(port.CompletionRequest)
			mu.Lock()
			seen[req.NumPredict] = true
			mu.Unlock()
			assert.InDelta(t, 0.1, req.Temperature, 1e-9)
			assert.Contains(t, req.Prompt, ocrText)
		}).
		Return("{}", nil)

	ex := newExtractor(t, backend, extraction.Config{Temperature: 0.1, Concurrency: 4})
	ex.ExtractAll(context.Background(), ocrText)

	assert.Equal(t, map[int]bool{700: true, 1000: true}, seen)
	backend.AssertNumberOfCalls(t, "Complete", 4)
}

func TestExtractor_ExtractAll_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).
		Return("{}", nil)

	ex := newExtractor(t, backend, extraction.Config{Concurrency: 1})
	ex.ExtractAll(context.Background(), ocrText)

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestExtractor_ExtractOne_StrictOnBackendError(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).
		Return("", domain.NewUnreachableError("ollama", assert.AnError))

	ex := newExtractor(t, backend, extraction.Config{})
	res, err := ex.ExtractOne(context.Background(), ocrText, domain.KindStructure)

	assert.ErrorIs(t, err, domain.ErrBackendUnreachable)
	assert.Equal(t, domain.EmptyResult(domain.KindStructure), res)
}

func TestExtractor_ExtractOne_StrictOnDecodeError(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).Return("no json here", nil)

	ex := newExtractor(t, backend, extraction.Config{})
	_, err := ex.ExtractOne(context.Background(), ocrText, domain.KindFormFields)

	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
}

func TestExtractor_ExtractOne_Names(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.MatchedBy(func(req port.CompletionRequest) bool {
		return req.NumPredict == 300 && strings.Contains(req.Prompt, "person names")
	})).Return(`{"names": ["John Doe"]}`, nil)

	ex := newExtractor(t, backend, extraction.Config{})
	res, err := ex.ExtractOne(context.Background(), ocrText, domain.KindNames)

	require.NoError(t, err)
	assert.Equal(t, domain.NameList{Names: []string{"John Doe"}}, res)
}

func TestExtractor_ExtractOne_AllTables(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.MatchedBy(func(req port.CompletionRequest) bool {
		return req.NumPredict == 700 && strings.Contains(req.Prompt, "Extract all tables")
	})).Return(`{"tables": [
		{"headers": ["Item", "Qty"], "rows": [["Pen", "2"]]},
		{"headers": ["Tax"], "rows": [["5%"]]}
	]}`, nil)

	ex := newExtractor(t, backend, extraction.Config{})
	res, err := ex.ExtractOne(context.Background(), ocrText, domain.KindAllTables)

	require.NoError(t, err)
	assert.Equal(t, domain.AllTables{
		{Headers: []string{"Item", "Qty"}, Rows: [][]string{{"Pen", "2"}}},
		{Headers: []string{"Tax"}, Rows: [][]string{{"5%"}}},
	}, res)
	backend.AssertExpectations(t)
}

func TestExtractor_ExtractOne_UnknownKind(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	ex := newExtractor(t, backend, extraction.Config{})

	res, err := ex.ExtractOne(context.Background(), ocrText, "signatures")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInvalidExtractionKind)
	backend.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestExtractor_ExtractOne_CallTimeout(t *testing.T) {
	backend := new(mocks.MockCompletionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		}).
		Return(`{"phones": []}`, nil)

	ex := newExtractor(t, backend, extraction.Config{CallTimeout: time.Second})
	_, err := ex.ExtractOne(context.Background(), ocrText, domain.KindPhones)
	require.NoError(t, err)
}
