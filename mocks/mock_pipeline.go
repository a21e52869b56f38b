package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docextract/internal/domain"
)

// MockPageRenderer is a mock implementation of port.PageRenderer.
type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) RenderPage(ctx context.Context, pdfPath string, page, longestDim int) ([]byte, error) {
	args := m.Called(ctx, pdfPath, page, longestDim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAnchorTextBuilder is a mock implementation of port.AnchorTextBuilder.
type MockAnchorTextBuilder struct {
	mock.Mock
}

func (m *MockAnchorTextBuilder) AnchorText(pdfPath string, page, maxLen int) (string, error) {
	args := m.Called(pdfPath, page, maxLen)
	return args.String(0), args.Error(1)
}

// MockPreparer is a mock implementation of port.Preparer.
type MockPreparer struct {
	mock.Mock
}

func (m *MockPreparer) Prepare(ctx context.Context, path string, kind domain.DocumentKind, page int) (*domain.PreparedInput, error) {
	args := m.Called(ctx, path, kind, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreparedInput), args.Error(1)
}

// MockTranscriber is a mock implementation of port.Transcriber.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, input *domain.PreparedInput) (*domain.OCRResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OCRResult), args.Error(1)
}

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractAll(ctx context.Context, ocrText string) domain.CompositeExtraction {
	args := m.Called(ctx, ocrText)
	return args.Get(0).(domain.CompositeExtraction)
}

func (m *MockExtractor) ExtractOne(ctx context.Context, ocrText string, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	args := m.Called(ctx, ocrText, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ExtractionResult), args.Error(1)
}
