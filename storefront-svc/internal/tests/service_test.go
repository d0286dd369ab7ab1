package tests

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodcourt/logger"
	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/cart"
	"foodcourt/storefront-svc/internal/domain"
	"foodcourt/storefront-svc/internal/mocks"
	"foodcourt/storefront-svc/internal/service"
)

func TestCatalogService_Snapshot(t *testing.T) {
	cached := sampleCatalog()
	restaurants := []domain.Restaurant{{ID: "r1", Name: "Burger Barn"}}
	items := []domain.MenuItem{{ID: "b1", RestaurantID: "r1", Name: "Cheese Burger"}}

	tests := []struct {
		name      string
		setupMock func(*mocks.CatalogRepository, *mocks.CatalogCache)
		want      *assistant.Catalog
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				cache.On("Get", mock.Anything).Return(cached, true, nil).Once()
			},
			want: cached,
		},
		{
			name: "cache miss loads and stores",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, false, nil).Once()
				repo.On("ListRestaurants", mock.Anything).Return(restaurants, nil).Once()
				repo.On("ListMenuItems", mock.Anything).Return(items, nil).Once()
				cache.On("Set", mock.Anything, &assistant.Catalog{Restaurants: restaurants, Items: items}).Return(nil).Once()
			},
			want: &assistant.Catalog{Restaurants: restaurants, Items: items},
		},
		{
			name: "cache failure falls back to database",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
				repo.On("ListRestaurants", mock.Anything).Return(restaurants, nil).Once()
				repo.On("ListMenuItems", mock.Anything).Return(items, nil).Once()
				cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
			},
			want: &assistant.Catalog{Restaurants: restaurants, Items: items},
		},
		{
			name: "database error",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, false, nil).Once()
				repo.On("ListRestaurants", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewCatalogCache(t)
			testCase.setupMock(repo, cache)
			svc := service.NewCatalogService(repo, cache, logger.Discard())

			got, err := svc.Snapshot(context.Background())

			if testCase.wantErr {
				assert.ErrorIs(t, err, assert.AnError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestCatalogService_RestaurantsByCuisine(t *testing.T) {
	all := sampleCatalog().Restaurants

	tests := []struct {
		cuisine string
		want    []string
	}{
		{cuisine: "", want: []string{"r1", "r2"}},
		{cuisine: "all", want: []string{"r1", "r2"}},
		{cuisine: "INDIAN", want: []string{"r2"}},
		{cuisine: "fast", want: []string{"r1"}},
		{cuisine: "thai", want: []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.cuisine, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			repo.On("ListRestaurants", mock.Anything).Return(all, nil).Once()
			svc := service.NewCatalogService(repo, nil, logger.Discard())

			got, err := svc.Restaurants(context.Background(), testCase.cuisine)

			require.NoError(t, err)
			ids := []string{}
			for _, rest := range got {
				ids = append(ids, rest.ID)
			}
			assert.Equal(t, testCase.want, ids)
		})
	}
}

func TestCatalogService_Restaurant_NotFound(t *testing.T) {
	repo := mocks.NewCatalogRepository(t)
	repo.On("GetRestaurant", mock.Anything, "nope").Return(nil, sql.ErrNoRows).Once()
	svc := service.NewCatalogService(repo, nil, logger.Discard())

	_, err := svc.Restaurant(context.Background(), "nope")

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCatalogService_CreateRestaurant(t *testing.T) {
	tests := []struct {
		name      string
		input     *domain.Restaurant
		setupMock func(*mocks.CatalogRepository, *mocks.CatalogCache)
		wantErr   error
	}{
		{
			name:  "valid restaurant invalidates cache",
			input: &domain.Restaurant{Name: "Wok Express"},
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				repo.On("CreateRestaurant", mock.Anything, mock.AnythingOfType("*domain.Restaurant")).Return(nil).Once()
				cache.On("Invalidate", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:      "empty name",
			input:     &domain.Restaurant{Name: "  "},
			setupMock: func(*mocks.CatalogRepository, *mocks.CatalogCache) {},
			wantErr:   service.ErrInvalidInput,
		},
		{
			name:  "database error",
			input: &domain.Restaurant{Name: "Wok Express"},
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.CatalogCache) {
				repo.On("CreateRestaurant", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewCatalogCache(t)
			testCase.setupMock(repo, cache)
			svc := service.NewCatalogService(repo, cache, logger.Discard())

			err := svc.CreateRestaurant(context.Background(), testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, testCase.input.ID)
		})
	}
}

func TestCatalogService_CreateMenuItem(t *testing.T) {
	t.Run("negative price", func(t *testing.T) {
		svc := service.NewCatalogService(mocks.NewCatalogRepository(t), nil, logger.Discard())
		err := svc.CreateMenuItem(context.Background(), &domain.MenuItem{Name: "Fries", Price: -1, RestaurantID: "r1"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		repo := mocks.NewCatalogRepository(t)
		repo.On("GetRestaurant", mock.Anything, "r9").Return(nil, sql.ErrNoRows).Once()
		svc := service.NewCatalogService(repo, nil, logger.Discard())

		err := svc.CreateMenuItem(context.Background(), &domain.MenuItem{Name: "Fries", RestaurantID: "r9"})

		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("created", func(t *testing.T) {
		repo := mocks.NewCatalogRepository(t)
		cache := mocks.NewCatalogCache(t)
		repo.On("GetRestaurant", mock.Anything, "r1").Return(&domain.Restaurant{ID: "r1"}, nil).Once()
		repo.On("CreateMenuItem", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil).Once()
		cache.On("Invalidate", mock.Anything).Return(nil).Once()
		svc := service.NewCatalogService(repo, cache, logger.Discard())

		item := &domain.MenuItem{Name: "Fries", Price: 99, RestaurantID: "r1"}
		require.NoError(t, svc.CreateMenuItem(context.Background(), item))
		assert.NotEmpty(t, item.ID)
	})
}

func TestCatalogService_DeleteMenuItem(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "missing", rows: 0, wantErr: service.ErrNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewCatalogCache(t)
			repo.On("DeleteMenuItem", mock.Anything, "r1", "b1").Return(testCase.rows, nil).Once()
			if testCase.wantErr == nil {
				cache.On("Invalidate", mock.Anything).Return(nil).Once()
			}
			svc := service.NewCatalogService(repo, cache, logger.Discard())

			err := svc.DeleteMenuItem(context.Background(), "r1", "b1")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionService_Lifecycle(t *testing.T) {
	sessions := newSessionService(t)

	sess, err := sessions.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.Cart.IsEmpty())
	require.Len(t, sess.Conversation.Messages(), 1)

	got, err := sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, sessions.Close(sess.ID))
	_, err = sessions.Get(sess.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, sessions.Close(sess.ID), service.ErrSessionNotFound)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSessionService_EvictIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	sessions := newSessionService(t).WithClock(clock.Now)

	idle, err := sessions.Create(context.Background())
	require.NoError(t, err)
	active, err := sessions.Create(context.Background())
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = sessions.Get(active.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, clock.Now(), active.LastSeen(), 0)

	clock.Advance(15 * time.Minute)
	evicted := sessions.EvictIdle(30 * time.Minute)

	assert.Equal(t, 1, evicted)
	_, err = sessions.Get(idle.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	_, err = sessions.Get(active.ID)
	assert.NoError(t, err)
	assert.Zero(t, sessions.EvictIdle(30*time.Minute))
}

func TestSessionService_RunEviction(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	sessions := newSessionService(t).WithClock(clock.Now)
	sess, err := sessions.Create(context.Background())
	require.NoError(t, err)
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sessions.RunEviction(ctx, 30*time.Minute, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool {
		_, err := sessions.Get(sess.ID)
		return errors.Is(err, service.ErrSessionNotFound)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("eviction loop did not stop")
	}
}

func TestSessionService_CatalogError(t *testing.T) {
	sessions := service.NewSessionService(staticCatalog{err: assert.AnError}, service.SessionOptions{}, logger.Discard())

	_, err := sessions.Create(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSessionService_CartOperations(t *testing.T) {
	sessions := newSessionService(t)
	sess, err := sessions.Create(context.Background())
	require.NoError(t, err)

	_, err = sessions.AddItem(sess.ID, "b1")
	require.NoError(t, err)
	_, err = sessions.AddItem(sess.ID, "b1")
	require.NoError(t, err)
	_, err = sessions.AddItem(sess.ID, "ghost")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
	_, err = sessions.AddItem("ghost", "b1")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	assert.Equal(t, 2, sess.Cart.Quantity("b1"))
	assert.Equal(t, "Burger Barn", sess.Cart.RestaurantName())

	_, err = sessions.UpdateQuantity(sess.ID, "b1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Cart.Quantity("b1"))

	_, err = sessions.UpdateQuantity(sess.ID, "b1", 0)
	require.NoError(t, err)
	assert.True(t, sess.Cart.IsEmpty())

	_, err = sessions.RemoveItem(sess.ID, "b1")
	require.NoError(t, err)

	assert.Equal(t, []cart.Notification{
		{Level: cart.LevelSuccess, Message: "Cheese Burger added to cart"},
		{Level: cart.LevelSuccess, Message: "Added another Cheese Burger to cart"},
		{Level: cart.LevelInfo, Message: "Cheese Burger removed from cart"},
	}, sess.Feed.Drain())
}

func checkoutSession(t *testing.T) *service.Session {
	t.Helper()
	sessions := newSessionService(t)
	sess, err := sessions.Create(context.Background())
	require.NoError(t, err)
	return sess
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		req     service.CheckoutRequest
		wantErr error
	}{
		{
			name:    "empty cart",
			req:     service.CheckoutRequest{DeliveryAddress: "12 Park St"},
			wantErr: service.ErrEmptyCart,
		},
		{
			name:    "missing address",
			items:   []string{"b1"},
			req:     service.CheckoutRequest{DeliveryAddress: "   "},
			wantErr: service.ErrMissingAddress,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sess := checkoutSession(t)
			for _, id := range testCase.items {
				item, _ := sess.Catalog.Item(id)
				sess.Cart.AddItem(item, "")
			}
			svc := service.NewOrderService(mocks.NewOrderRepository(t), nil, nil, logger.Discard())

			order, err := svc.Checkout(context.Background(), sess, testCase.req)

			assert.Nil(t, order)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Equal(t, len(testCase.items), sess.Cart.ItemCount())
		})
	}
}

func TestOrderService_Checkout(t *testing.T) {
	sess := checkoutSession(t)
	burger, _ := sess.Catalog.Item("b1")
	chicken, _ := sess.Catalog.Item("s1")
	sess.Cart.AddItem(burger, "Burger Barn")
	sess.Cart.AddItem(burger, "Burger Barn")
	sess.Cart.AddItem(chicken, "Spice Garden")

	repo := mocks.NewOrderRepository(t)
	publisher := mocks.NewOrderPublisher(t)
	qr := mocks.NewQRGenerator(t)

	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Subtotal == 620 && o.Taxes == 31 && o.DeliveryFee == 40 && o.TotalAmount == 691 &&
			o.RestaurantID == "r1" && o.RestaurantName == "Burger Barn" &&
			o.Status == domain.StatusPending && len(o.Items) == 2 && o.SessionID == sess.ID
	})).Return(nil).Once()
	qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png"), nil).Once()
	repo.On("SaveQRCode", mock.Anything, mock.AnythingOfType("string"), []byte("png")).Return(nil).Once()
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderPlaced && e.TotalAmount == 691 && len(e.Items) == 2
	})).Return(errors.New("broker down")).Once()

	svc := service.NewOrderService(repo, publisher, qr, logger.Discard())
	order, err := svc.Checkout(context.Background(), sess, service.CheckoutRequest{
		DeliveryAddress:     " 12 Park St ",
		SpecialInstructions: "ring twice",
	})

	require.NoError(t, err)
	assert.Equal(t, "12 Park St", order.DeliveryAddress)
	assert.Equal(t, "/api/orders/"+order.ID+"/qrcode", order.QRCode)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestOrderService_CheckoutKeepsItemsAddedDuringCheckout(t *testing.T) {
	sess := checkoutSession(t)
	burger, _ := sess.Catalog.Item("b1")
	fries, _ := sess.Catalog.Item("f1")
	sess.Cart.AddItem(burger, "Burger Barn")

	repo := mocks.NewOrderRepository(t)
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return len(o.Items) == 1 && o.Items[0].MenuItemID == "b1"
	})).Run(func(mock.Arguments) {
		sess.Cart.AddItem(fries, "Burger Barn")
	}).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, nil, logger.Discard())
	_, err := svc.Checkout(context.Background(), sess, service.CheckoutRequest{DeliveryAddress: "12 Park St"})

	require.NoError(t, err)
	lines := sess.Cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "f1", lines[0].MenuItem.ID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestOrderService_CheckoutRepoError(t *testing.T) {
	sess := checkoutSession(t)
	item, _ := sess.Catalog.Item("f1")
	sess.Cart.AddItem(item, "Burger Barn")

	repo := mocks.NewOrderRepository(t)
	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	svc := service.NewOrderService(repo, nil, nil, logger.Discard())

	_, err := svc.Checkout(context.Background(), sess, service.CheckoutRequest{DeliveryAddress: "12 Park St"})

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, sess.Cart.IsEmpty())
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.OrderStatus
		setupMock func(*mocks.OrderRepository, *mocks.OrderPublisher)
		wantErr   error
	}{
		{
			name:      "unknown status",
			status:    "teleported",
			setupMock: func(*mocks.OrderRepository, *mocks.OrderPublisher) {},
			wantErr:   service.ErrInvalidStatus,
		},
		{
			name:   "missing order",
			status: domain.StatusConfirmed,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.OrderPublisher) {
				repo.On("GetOrder", mock.Anything, "o1").Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: service.ErrNotFound,
		},
		{
			name:   "delivered order is closed",
			status: domain.StatusCancelled,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.OrderPublisher) {
				repo.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.StatusDelivered}, nil).Once()
			},
			wantErr: service.ErrOrderClosed,
		},
		{
			name:   "moves forward and publishes",
			status: domain.StatusPreparing,
			setupMock: func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {
				repo.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.StatusConfirmed}, nil).Once()
				repo.On("UpdateStatus", mock.Anything, "o1", domain.StatusPreparing).Return(nil).Once()
				publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
					return e.Type == domain.EventOrderStatusChanged && e.Status == domain.StatusPreparing && e.Items == nil
				})).Return(nil).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			publisher := mocks.NewOrderPublisher(t)
			testCase.setupMock(repo, publisher)
			svc := service.NewOrderService(repo, publisher, nil, logger.Discard())

			order, err := svc.UpdateStatus(context.Background(), "o1", testCase.status)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.status, order.Status)
		})
	}
}

func TestOrderService_QRCodeRegenerates(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	qr := mocks.NewQRGenerator(t)
	repo.On("GetQRCode", mock.Anything, "o1").Return(nil, nil).Once()
	qr.On("Generate", "o1").Return([]byte("png"), nil).Once()
	repo.On("SaveQRCode", mock.Anything, "o1", []byte("png")).Return(nil).Once()
	svc := service.NewOrderService(repo, nil, qr, logger.Discard())

	got, err := svc.QRCode(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "http://localhost:8080/"}

	qr, err := gen.Generate("o1")

	assert.NoError(t, err)
	assert.NotEmpty(t, qr)
	assert.Equal(t, "http://localhost:8080/orders/o1", gen.TrackingURL("o1"))
}
