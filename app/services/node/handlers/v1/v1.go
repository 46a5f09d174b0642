// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/crosspay/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/crosspay/foundation/blockchain/state"
	"github.com/ardanlabs/crosspay/foundation/events"
	"github.com/ardanlabs/crosspay/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Miner string
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Miner: cfg.Miner,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:account", pbl.Balances)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/chain/validate", pbl.Validate)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/tx/list/:account", pbl.RecordsByAccount)
	app.Handle(http.MethodGet, version, "/tx/:id", pbl.QueryRecord)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitRecord)
	app.Handle(http.MethodPost, version, "/mining/mine", pbl.MineBlock)
	app.Handle(http.MethodPost, version, "/accounts/fund", pbl.Fund)
}
