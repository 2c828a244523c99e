package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CatalogEntryModel{},
		&InventoryEntryModel{},
		&ListingModel{},
		&LedgerEntryModel{},
		&AccountModel{},
	)
}

// CatalogEntryModel GORM平台商品模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ProductCode有唯一索引,防止重复建档
// 3. Quantity/TotalAdded只允许交易引擎事务内修改,
//    守恒校验:quantity + Σ卖家库存 + Σ挂牌 == total_added
type CatalogEntryModel struct {
	ID          uint      `gorm:"primaryKey"`
	ProductCode string    `gorm:"uniqueIndex;size:64;not null;comment:商品编码"`
	Name        string    `gorm:"index:idx_search;size:200;not null;comment:商品名称"`
	Description string    `gorm:"type:text;comment:商品描述"`
	Price       int64     `gorm:"not null;comment:单价(分)"`
	Quantity    int       `gorm:"not null;default:0;comment:当前在售数量"`
	TotalAdded  int       `gorm:"not null;default:0;comment:历史累计入库数量"`
	Listed      bool      `gorm:"index;not null;default:1;comment:是否上架"`
	Category    string    `gorm:"index;size:64;comment:商品分类"`
	SellerID    uint      `gorm:"index;not null;default:0;comment:归属卖家(0=平台)"`
	CoverURL    string    `gorm:"size:500;comment:商品图片URL"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CatalogEntryModel) TableName() string {
	return "catalog_entries"
}

// InventoryEntryModel GORM卖家库存模型
// 设计说明:
// 1. (SellerID, ProductID)联合唯一索引——一个卖家对一个商品只有一条记录
// 2. 数量可以为0但记录不删除(保留购入价历史)
// 3. 展示字段为购入时快照,不随商品条目变更
type InventoryEntryModel struct {
	ID          uint      `gorm:"primaryKey"`
	SellerID    uint      `gorm:"uniqueIndex:idx_seller_product;not null;comment:卖家用户ID"`
	ProductID   uint      `gorm:"uniqueIndex:idx_seller_product;index;not null;comment:商品条目ID"`
	Quantity    int       `gorm:"not null;default:0;comment:持有数量"`
	UnitCost    int64     `gorm:"not null;comment:购入单价(分)"`
	Name        string    `gorm:"size:200;not null;comment:商品名称快照"`
	Description string    `gorm:"type:text;comment:商品描述快照"`
	ImageURL    string    `gorm:"size:500;comment:商品图片快照"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (InventoryEntryModel) TableName() string {
	return "inventory_entries"
}

// ListingModel GORM挂牌模型
// 设计说明:
// 1. (SellerID, ProductID)联合唯一——重复挂牌合并数量
// 2. 物理删除(删除挂牌把数量退回库存后整行删除),不做软删除,
//    否则"挂牌不存在"的幂等语义会被软删除行干扰
type ListingModel struct {
	ID          uint      `gorm:"primaryKey"`
	SellerID    uint      `gorm:"uniqueIndex:idx_seller_product;index;not null;comment:卖家用户ID"`
	ProductID   uint      `gorm:"uniqueIndex:idx_seller_product;index;not null;comment:商品条目ID"`
	Quantity    int       `gorm:"not null;default:0;comment:在售数量"`
	Price       int64     `gorm:"not null;comment:挂牌单价(分)"`
	Name        string    `gorm:"size:200;not null;comment:商品名称快照"`
	Description string    `gorm:"type:text;comment:商品描述快照"`
	ImageURL    string    `gorm:"size:500;comment:商品图片快照"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ListingModel) TableName() string {
	return "listings"
}

// LedgerEntryModel GORM成交流水模型
// 设计说明:
// 1. 只增不改:没有任何代码路径执行UPDATE/DELETE
// 2. TradeNo唯一索引(业务主键)
// 3. 记录成交时的价格快照
type LedgerEntryModel struct {
	ID          uint      `gorm:"primaryKey"`
	TradeNo     string    `gorm:"uniqueIndex;size:32;not null;comment:交易号"`
	BuyerID     uint      `gorm:"index;not null;comment:买家用户ID"`
	ProductID   uint      `gorm:"index;not null;comment:商品条目ID"`
	ProductCode string    `gorm:"index;size:64;not null;comment:商品编码"`
	Quantity    int       `gorm:"not null;comment:成交数量"`
	UnitPrice   int64     `gorm:"not null;comment:成交单价(分)"`
	TotalPrice  int64     `gorm:"not null;comment:成交总价(分)"`
	CreatedAt   time.Time `gorm:"index;comment:成交时间"`
}

// TableName 指定表名
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// AccountModel GORM余额账户模型
// 设计说明:
// 1. UserID为主键,一个用户一个账户
// 2. 余额只能由交易引擎在事务内修改,应用层保证非负,
//    数据库侧再用guarded UPDATE兜底
type AccountModel struct {
	UserID    uint      `gorm:"primaryKey;comment:用户ID"`
	Balance   int64     `gorm:"not null;default:0;comment:余额(分)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AccountModel) TableName() string {
	return "accounts"
}
