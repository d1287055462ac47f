package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avandersen/tokex/pkg/exchange"
	"github.com/avandersen/tokex/pkg/storage"
	"github.com/avandersen/tokex/pkg/util"
)

// Config carries the server's tunables.
type Config struct {
	DepthLimit  int      // default depth levels returned when no limit query is given
	CORSOrigins []string // allowed origins for browser clients
}

// Server handles REST API and WebSocket connections. It is a thin transport
// over the store (snapshot source) and the pure quoting core: every request
// loads a fresh snapshot, so concurrent requests need no coordination.
type Server struct {
	store  storage.Store
	pairs  *exchange.PairRegistry
	cfg    Config
	router *mux.Router
	hub    *Hub
	log    *zap.SugaredLogger
	clock  util.Clock
}

// NewServer creates a new API server.
func NewServer(store storage.Store, pairs *exchange.PairRegistry, cfg Config, logger *zap.SugaredLogger) *Server {
	if cfg.DepthLimit <= 0 {
		cfg.DepthLimit = 50
	}
	s := &Server{
		store:  store,
		pairs:  pairs,
		cfg:    cfg,
		router: mux.NewRouter(),
		hub:    NewHub(logger),
		log:    logger,
		clock:  util.RealClock{},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Token endpoints
	api.HandleFunc("/tokens", s.handleGetTokens).Methods("GET")
	api.HandleFunc("/tokens/pairs", s.handleGetTokenPairs).Methods("GET")

	// Pair endpoints
	api.HandleFunc("/pairs", s.handleGetPairs).Methods("GET")
	api.HandleFunc("/pairs/{code}", s.handleGetPair).Methods("GET")
	api.HandleFunc("/pairs/{code}/depth", s.handleGetDepth).Methods("GET")
	api.HandleFunc("/pairs/{code}/trades", s.handleGetTrades).Methods("GET")

	// Quoting
	api.HandleFunc("/pairs/{code}/quote", s.handleQuote).Methods("POST")

	// Order submission (persist only; matching is external)
	api.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")

	// WebSocket endpoint
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler { return s.router }

// Start starts the API server.
func (s *Server) Start(addr string) error {
	go s.hub.Run()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	s.log.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, c.Handler(s.router))
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.pairs.Tokens())
}

func (s *Server) handleGetTokenPairs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.pairs.TokenPairs())
}

func (s *Server) handleGetPairs(w http.ResponseWriter, r *http.Request) {
	pairs := s.pairs.List()
	response := make([]PairInfo, len(pairs))
	for i, p := range pairs {
		response[i] = pairInfo(p)
	}
	respondJSON(w, response)
}

func (s *Server) handleGetPair(w http.ResponseWriter, r *http.Request) {
	p, err := s.pairs.Get(mux.Vars(r)["code"])
	if err != nil {
		respondError(w, http.StatusNotFound, "pair not found", err.Error())
		return
	}
	respondJSON(w, pairInfo(p))
}

func (s *Server) handleGetDepth(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if _, err := s.pairs.Get(code); err != nil {
		respondError(w, http.StatusNotFound, "pair not found", err.Error())
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), s.cfg.DepthLimit)

	snapshot, err := s.depthSnapshot(code, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load book", err.Error())
		return
	}
	respondJSON(w, snapshot)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	pair, err := s.pairs.Get(code)
	if err != nil {
		respondError(w, http.StatusNotFound, "pair not found", err.Error())
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	now := s.clock.Now().UnixMilli()
	order, err := exchange.NewOrder(exchange.OrderFields{
		Owner:             req.Owner,
		Pair:              pair.Code,
		Token1:            pair.Token1,
		Token2:            pair.Token2,
		Side:              exchange.Side(req.Side),
		Type:              exchange.TypeMarket,
		Status:            exchange.StatusSubmitting,
		Price:             req.PriceLimit,
		Quantity:          req.Quantity,
		Value:             req.Value,
		QuantitySpecified: req.QuantitySpecified,
		DateCreated:       now,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order", err.Error())
		return
	}

	// A BUY consumes the SELL book and vice versa.
	snapshot, err := s.store.LoadRestingOrders(pair.Code, order.Side.Opposite())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load book", err.Error())
		return
	}
	book := exchange.BuildBook(snapshot, exchange.DirectionFor(order.Side))

	quote, err := exchange.ComputeQuote(order, book, pair)
	if errors.Is(err, exchange.ErrInsufficientLiquidity) {
		respondError(w, http.StatusUnprocessableEntity, "insufficient liquidity", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "quote failed", err.Error())
		return
	}

	s.log.Infow("quote_computed",
		"pair", pair.Code,
		"side", order.Side,
		"pay", quote.Pay,
		"receive", quote.Receive,
		"fee", quote.Fee)

	respondJSON(w, QuoteResponse{
		Pair:         pair.Code,
		Side:         string(order.Side),
		Pay:          quote.Pay,
		Receive:      quote.Receive,
		Fee:          quote.Fee,
		PayToken:     quote.PayToken,
		ReceiveToken: quote.ReceiveToken,
		FeeToken:     quote.FeeToken,
		Timestamp:    now,
	})
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pair, err := s.pairs.Get(req.Pair)
	if err != nil {
		respondError(w, http.StatusNotFound, "pair not found", err.Error())
		return
	}

	// Only LIMIT/LIMIT-ONLY orders can rest in the book; a MARKET order has
	// no price level to rest at, and a zero-price entry would shadow every
	// real level in the ascending ask book.
	if exchange.OrderType(req.Type) == exchange.TypeMarket {
		respondError(w, http.StatusBadRequest, "invalid order",
			"MARKET orders cannot rest in the book; request a quote instead")
		return
	}

	order, err := exchange.NewOrder(exchange.OrderFields{
		Owner:  req.Owner,
		Pair:   pair.Code,
		Token1: pair.Token1,
		Token2: pair.Token2,
		Side:   exchange.Side(req.Side),
		Type:   exchange.OrderType(req.Type),
		// This service is the book of record for resting orders; the
		// external settlement service owns later status transitions.
		Status:            exchange.StatusPending,
		Price:             req.Price,
		Quantity:          req.Quantity,
		Value:             req.Value,
		QuantitySpecified: req.QuantitySpecified,
		DateCreated:       s.clock.Now().UnixMilli(),
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order", err.Error())
		return
	}

	if err := s.store.SaveOrder(order); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save order", err.Error())
		return
	}

	s.log.Infow("order_submitted", "id", order.ID, "pair", order.Pair, "side", order.Side)
	s.BroadcastDepth(order.Pair)

	respondJSON(w, OrderResponse{
		ID:          order.ID,
		Pair:        order.Pair,
		Side:        string(order.Side),
		Type:        string(order.Type),
		Status:      string(order.Status),
		Price:       order.Price,
		Quantity:    order.Quantity,
		Value:       order.Value,
		DateCreated: order.DateCreated,
	})
}

func (s *Server) handleGetTrades(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if _, err := s.pairs.Get(code); err != nil {
		respondError(w, http.StatusNotFound, "pair not found", err.Error())
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), 100)

	trades, err := s.store.LoadRecentTrades(code, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load trades", err.Error())
		return
	}

	response := make([]TradeInfo, len(trades))
	for i, t := range trades {
		response[i] = TradeInfo{
			ID:       t.ID,
			Pair:     t.Pair,
			Price:    t.Price,
			Quantity: t.Quantity,
			FeePayer: string(t.FeePayer),
			Date:     t.Date,
		}
	}
	respondJSON(w, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// ==============================
// Broadcast Methods
// ==============================

// BroadcastDepth pushes the current aggregated depth for a pair to all
// WebSocket clients subscribed to its depth channel.
func (s *Server) BroadcastDepth(pair string) {
	snapshot, err := s.depthSnapshot(pair, s.cfg.DepthLimit)
	if err != nil {
		s.log.Warnw("depth_broadcast_failed", "pair", pair, "err", err)
		return
	}

	s.hub.PublishDepth("depth:"+pair, DepthUpdate{
		Type:      "depth",
		Pair:      snapshot.Pair,
		Bids:      snapshot.Bids,
		Asks:      snapshot.Asks,
		Timestamp: snapshot.Timestamp,
	})
}

// depthSnapshot aggregates both sides of a pair's book. Bids are computed
// descending (best bid first), asks ascending (best ask first); display
// layers may reverse the ask side for a ladder view.
func (s *Server) depthSnapshot(pair string, limit int) (DepthSnapshot, error) {
	buys, err := s.store.LoadRestingOrders(pair, exchange.SideBuy)
	if err != nil {
		return DepthSnapshot{}, err
	}
	sells, err := s.store.LoadRestingOrders(pair, exchange.SideSell)
	if err != nil {
		return DepthSnapshot{}, err
	}

	return DepthSnapshot{
		Pair:      pair,
		Bids:      exchange.ComputeAggregateDepth(buys, pair, exchange.SideBuy, exchange.Descending, limit),
		Asks:      exchange.ComputeAggregateDepth(sells, pair, exchange.SideSell, exchange.Ascending, limit),
		Timestamp: s.clock.Now().UnixMilli(),
	}, nil
}

// ==============================
// Helper Functions
// ==============================

func pairInfo(p *exchange.Pair) PairInfo {
	return PairInfo{
		Code:           p.Code,
		Token1:         p.Token1,
		Token2:         p.Token2,
		Token1Decimals: p.Token1Decimals,
		Token2Decimals: p.Token2Decimals,
		LiquidityFee:   p.LiquidityFee,
		PlatformFee:    p.PlatformFee,
	}
}

// parseLimit normalizes a limit query parameter. Fractional values round to
// the nearest whole number; absent, unparseable or non-positive values fall
// back to def.
func parseLimit(q string, def int) int {
	if q == "" {
		return def
	}
	d, err := decimal.NewFromString(q)
	if err != nil {
		return def
	}
	if n := exchange.RoundToInt(d); n > 0 {
		return int(n)
	}
	return def
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, error string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}
