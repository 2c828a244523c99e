package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/config"
	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/persistence/mysql"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
)

// 实时变更监听器:订阅变更事件并打印最新快照
// 用法:
//
//	watch -collection catalog
//	watch -collection inventory -seller 42
//	watch -collection listings -seller 42
//
// 每次相关事务提交后收到一次推送,内容是重查后的已提交状态
func main() {
	collection := flag.String("collection", "catalog", "监听的集合: catalog / inventory / listings")
	sellerID := flag.Uint("seller", 0, "卖家ID(inventory/listings必填)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	subscriber := projection.NewSubscriber(
		cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange,
		mysql.NewCatalogRepository(db),
		mysql.NewInventoryRepository(db),
		mysql.NewListingRepository(db),
	)

	onError := func(err error) {
		log.Printf("⚠ 订阅流异常: %v", err)
	}

	var sub *projection.Subscription
	switch *collection {
	case "catalog":
		sub, err = subscriber.SubscribeCatalog(printCatalog, onError)
	case "inventory":
		if *sellerID == 0 {
			log.Fatal("监听inventory必须指定-seller")
		}
		sub, err = subscriber.SubscribeInventory(*sellerID, printInventory, onError)
	case "listings":
		if *sellerID == 0 {
			log.Fatal("监听listings必须指定-seller")
		}
		sub, err = subscriber.SubscribeListings(*sellerID, printListings, onError)
	default:
		log.Fatalf("未知集合: %s", *collection)
	}
	if err != nil {
		log.Fatalf("建立订阅失败: %v", err)
	}
	defer sub.Cancel()

	fmt.Printf("✓ 正在监听 %s 变更,按Ctrl+C退出\n\n", *collection)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("退出监听")
}

func printCatalog(entries []*catalog.Entry) {
	fmt.Printf("[catalog] %d件在售商品\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  #%d %s %s 单价%d分 余量%d\n",
			e.ID, e.ProductCode, e.Name, e.Price, e.Quantity)
	}
}

func printInventory(entries []*inventory.Entry) {
	fmt.Printf("[inventory] %d条库存\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  商品#%d %s 数量%d 购入价%d分\n",
			e.ProductID, e.Name, e.Quantity, e.UnitCost)
	}
}

func printListings(listings []*listing.Listing) {
	fmt.Printf("[listings] %d条挂牌\n", len(listings))
	for _, l := range listings {
		fmt.Printf("  挂牌#%d 商品#%d %s 数量%d 售价%d分\n",
			l.ID, l.ProductID, l.Name, l.Quantity, l.Price)
	}
}
