// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// MockNATSClient is a mock implementation of NATSClientInterface
type MockNATSClient struct {
	handlers       map[string]func(data []byte)
	requests       []*SessionNATSRequest
	requestReply   []byte
	requestError   error
	subscribeError error
	unsubscribed   bool
	closed         bool
}

func NewMockNATSClient() *MockNATSClient {
	return &MockNATSClient{handlers: map[string]func(data []byte){}}
}

func (m *MockNATSClient) Subscribe(ctx context.Context, subject string, handler func(data []byte)) (func() error, error) {
	if m.subscribeError != nil {
		return nil, m.subscribeError
	}
	m.handlers[subject] = handler
	return func() error {
		m.unsubscribed = true
		return nil
	}, nil
}

func (m *MockNATSClient) Request(ctx context.Context, request *SessionNATSRequest) ([]byte, error) {
	m.requests = append(m.requests, request)
	if m.requestError != nil {
		return nil, m.requestError
	}
	return m.requestReply, nil
}

func (m *MockNATSClient) Close() error {
	m.closed = true
	return nil
}

func (m *MockNATSClient) Deliver(subject string, data string) {
	m.handlers[subject]([]byte(data))
}

func receive(t *testing.T, ch <-chan model.User) model.User {
	t.Helper()
	select {
	case user := <-ch:
		return user
	case <-time.After(time.Second):
		t.Fatal("no session user received")
	}
	return model.User{}
}

func TestNATSSessionProviderUpdates(t *testing.T) {
	assertion := assert.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := NewMockNATSClient()
	provider, err := newSessionProvider(ctx, client, Config{Timeout: time.Second})
	assertion.NoError(err)

	users, err := provider.Subscribe(ctx)
	assertion.NoError(err)

	client.Deliver(constants.SessionUpdatedSubject, `{"id":"u-1","name":"Ada","email":"ada@example.com"}`)
	assertion.Equal(model.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}, receive(t, users))

	// malformed updates are dropped
	client.Deliver(constants.SessionUpdatedSubject, `not json`)
	client.Deliver(constants.SessionUpdatedSubject, `{"id":""}`)
	assertion.False(receive(t, users).Resolved())

	assertion.NoError(provider.Close())
	assertion.True(client.unsubscribed)
	assertion.True(client.closed)

	_, open := <-users
	assertion.False(open)

	_, err = provider.Subscribe(ctx)
	var unavailable errors.ServiceUnavailable
	assertion.True(stderrors.As(err, &unavailable))
}

func TestNATSSessionProviderLoadCached(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		requestError  error
		expectedUser  *model.User
		expectedError bool
	}{
		{
			name:         "cached user is published",
			reply:        `{"id":"u-7","name":"Grace"}`,
			expectedUser: &model.User{ID: "u-7", Name: "Grace"},
		},
		{
			name:  "empty reply publishes nothing",
			reply: "  ",
		},
		{
			name:  "signed out reply publishes nothing",
			reply: `{"id":""}`,
		},
		{
			name:          "malformed reply",
			reply:         `{"id":`,
			expectedError: true,
		},
		{
			name:          "request failure",
			requestError:  stderrors.New("nats: timeout"),
			expectedError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			client := NewMockNATSClient()
			client.requestReply = []byte(tc.reply)
			client.requestError = tc.requestError

			provider, err := newSessionProvider(ctx, client, Config{Timeout: 2 * time.Second})
			assert.NoError(t, err)
			users, _ := provider.Subscribe(ctx)

			err = provider.LoadCached(ctx)
			if tc.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if assert.Len(t, client.requests, 1) {
				assert.Equal(t, constants.SessionCurrentSubject, client.requests[0].Subject)
				assert.Equal(t, 2*time.Second, client.requests[0].Timeout)
			}

			if tc.expectedUser != nil {
				assert.Equal(t, *tc.expectedUser, receive(t, users))
			} else {
				assert.Len(t, users, 0)
			}
		})
	}
}

func TestNATSSessionProviderSubscribeFailure(t *testing.T) {
	client := NewMockNATSClient()
	client.subscribeError = stderrors.New("nats: connection closed")

	_, err := newSessionProvider(context.Background(), client, Config{})
	assert.ErrorIs(t, err, client.subscribeError)
}

func TestNATSSessionProviderUnsubscribeOnCancel(t *testing.T) {
	provider, err := newSessionProvider(context.Background(), NewMockNATSClient(), Config{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	users, err := provider.Subscribe(ctx)
	assert.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, open := <-users:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
