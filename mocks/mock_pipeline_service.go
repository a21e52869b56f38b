package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docextract/internal/domain"
	"docextract/internal/service"
)

// MockPipelineService is a mock implementation of service.PipelineService.
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) Extract(ctx context.Context, in service.DocumentInput) (*domain.CompositeExtraction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompositeExtraction), args.Error(1)
}

func (m *MockPipelineService) ExtractKind(ctx context.Context, in service.DocumentInput, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	args := m.Called(ctx, in, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ExtractionResult), args.Error(1)
}

func (m *MockPipelineService) BatchExtract(ctx context.Context, inputs []service.DocumentInput) []domain.BatchItem {
	args := m.Called(ctx, inputs)
	return args.Get(0).([]domain.BatchItem)
}

func (m *MockPipelineService) OCR(ctx context.Context, in service.DocumentInput) (*domain.TranscribedDocument, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranscribedDocument), args.Error(1)
}

func (m *MockPipelineService) LLMExtract(ctx context.Context, ocrText string) domain.CompositeExtraction {
	args := m.Called(ctx, ocrText)
	return args.Get(0).(domain.CompositeExtraction)
}

func (m *MockPipelineService) FullPipeline(ctx context.Context, in service.DocumentInput) (*domain.PipelineResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineResult), args.Error(1)
}

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, in service.DocumentInput) (*domain.UploadReceipt, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadReceipt), args.Error(1)
}

func (m *MockUploadService) ExtractFromUpload(ctx context.Context, token string, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	args := m.Called(ctx, token, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ExtractionResult), args.Error(1)
}
