package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "stockroom-backend/internal/adapter/http"
	mw "stockroom-backend/internal/adapter/middleware"
	"stockroom-backend/internal/adapter/repository/mysql"
	"stockroom-backend/internal/config"
	borrowDomain "stockroom-backend/internal/domain/borrow"
	itemDomain "stockroom-backend/internal/domain/item"
	requestDomain "stockroom-backend/internal/domain/request"
	requisitionDomain "stockroom-backend/internal/domain/requisition"
	"stockroom-backend/internal/infrastructure/cache"
	"stockroom-backend/internal/infrastructure/db"
	borrowUC "stockroom-backend/internal/usecase/borrow"
	"stockroom-backend/internal/usecase/catalog"
	requestUC "stockroom-backend/internal/usecase/request"
	requisitionUC "stockroom-backend/internal/usecase/requisition"
	"stockroom-backend/internal/usecase/stock"
	"stockroom-backend/pkg/clock"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err := gdb.AutoMigrate(
		&itemDomain.Item{},
		&requestDomain.BorrowRequest{},
		&borrowDomain.Transaction{},
		&requisitionDomain.Transaction{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}

	items := mysql.NewItemRepository(gdb)
	requests := mysql.NewRequestRepository(gdb)
	borrows := mysql.NewBorrowRepository(gdb)
	requisitions := mysql.NewRequisitionRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	ledger := stock.NewLedger(log)
	clk := clock.System{}

	catalogUC := catalog.NewUsecase(items, uow)
	reqUC := requestUC.NewUsecase(items, requests, uow, ledger, clk)
	brwUC := borrowUC.NewUsecase(items, borrows, uow, ledger, clk)
	rqsUC := requisitionUC.NewUsecase(items, requisitions, uow, ledger, clk)

	h := httpadp.NewHandler()
	itemH := httpadp.NewItemHandler(catalogUC)
	requestH := httpadp.NewRequestHandler(reqUC)
	borrowH := httpadp.NewBorrowHandler(brwUC)
	requisitionH := httpadp.NewRequisitionHandler(rqsUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	idemp := mw.Idempotency(rdb, log, time.Duration(cfg.IdempTTLSecs)*time.Second)

	v1 := e.Group("/v1")
	v1.GET("/items", itemH.ListItems)
	v1.GET("/items/:item_id", itemH.GetItem)
	v1.POST("/items", itemH.CreateItem, idemp)
	v1.PATCH("/items/:item_id", itemH.UpdateItem, idemp)
	v1.DELETE("/items/:item_id", itemH.DeleteItem, idemp)

	v1.GET("/borrow-requests", requestH.ListRequests)
	v1.POST("/borrow-requests", requestH.CreateRequest, idemp)
	v1.POST("/borrow-requests/:request_id/approve", requestH.ApproveRequest, idemp)
	v1.POST("/borrow-requests/:request_id/reject", requestH.RejectRequest, idemp)
	v1.POST("/borrow-requests/:request_id/cancel", requestH.CancelRequest, idemp)

	v1.GET("/borrow-transactions", borrowH.ListTransactions)
	v1.POST("/borrow-transactions/:transaction_id/renew", borrowH.RenewBorrow, idemp)
	v1.POST("/borrow-transactions/:transaction_id/check-in", borrowH.CheckInBorrow, idemp)

	v1.GET("/requisitions", requisitionH.ListRequisitions)
	v1.POST("/requisitions/:requisition_id/complete", requisitionH.CompleteRequisition, idemp)
	v1.POST("/requisitions/:requisition_id/cancel", requisitionH.CancelRequisition, idemp)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
