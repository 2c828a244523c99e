package stock

import (
	"context"
	"sync"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/account"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/ledger"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// 内存版仓储+事务执行器:
// 事务执行器用互斥锁串行化事务(等价于行锁的最保守情形),
// 事务开始时对整个存储做快照,fn返回错误时恢复快照(回滚)。
// 仓储方法本身不加锁,只能经由事务执行器或单线程访问。

// sellerProduct 库存/挂牌的(卖家,商品)键
type sellerProduct struct {
	sellerID  uint
	productID uint
}

// memStore 内存存储
type memStore struct {
	catalogEntries map[uint]catalog.Entry
	inventories    map[sellerProduct]inventory.Entry
	listings       map[uint]listing.Listing
	ledgerEntries  []ledger.Entry
	accounts       map[uint]account.Account

	nextCatalogID   uint
	nextInventoryID uint
	nextListingID   uint
	nextLedgerID    uint
}

func newMemStore() *memStore {
	return &memStore{
		catalogEntries: make(map[uint]catalog.Entry),
		inventories:    make(map[sellerProduct]inventory.Entry),
		listings:       make(map[uint]listing.Listing),
		accounts:       make(map[uint]account.Account),
	}
}

// snapshot 深拷贝整个存储(实体都是值类型,map拷贝即可)
func (s *memStore) snapshot() *memStore {
	snap := &memStore{
		catalogEntries:  make(map[uint]catalog.Entry, len(s.catalogEntries)),
		inventories:     make(map[sellerProduct]inventory.Entry, len(s.inventories)),
		listings:        make(map[uint]listing.Listing, len(s.listings)),
		ledgerEntries:   append([]ledger.Entry(nil), s.ledgerEntries...),
		accounts:        make(map[uint]account.Account, len(s.accounts)),
		nextCatalogID:   s.nextCatalogID,
		nextInventoryID: s.nextInventoryID,
		nextListingID:   s.nextListingID,
		nextLedgerID:    s.nextLedgerID,
	}
	for k, v := range s.catalogEntries {
		snap.catalogEntries[k] = v
	}
	for k, v := range s.inventories {
		snap.inventories[k] = v
	}
	for k, v := range s.listings {
		snap.listings[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	return snap
}

// restore 恢复到快照状态
func (s *memStore) restore(snap *memStore) {
	s.catalogEntries = snap.catalogEntries
	s.inventories = snap.inventories
	s.listings = snap.listings
	s.ledgerEntries = snap.ledgerEntries
	s.accounts = snap.accounts
	s.nextCatalogID = snap.nextCatalogID
	s.nextInventoryID = snap.nextInventoryID
	s.nextListingID = snap.nextListingID
	s.nextLedgerID = snap.nextLedgerID
}

// conservationTotal 守恒审计:平台余量 + Σ卖家库存 + Σ挂牌
func (s *memStore) conservationTotal(productID uint) int {
	total := 0
	if e, ok := s.catalogEntries[productID]; ok {
		total += e.Quantity
	}
	for k, inv := range s.inventories {
		if k.productID == productID {
			total += inv.Quantity
		}
	}
	for _, l := range s.listings {
		if l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

// memTxRunner 串行化事务执行器(快照回滚)
type memTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

func (r *memTxRunner) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.store.snapshot()
	if err := fn(ctx); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// =========================================
// 仓储实现
// =========================================

type memCatalogRepo struct{ s *memStore }

func (r *memCatalogRepo) Create(ctx context.Context, e *catalog.Entry) error {
	for _, existing := range r.s.catalogEntries {
		if existing.ProductCode == e.ProductCode {
			return catalog.ErrProductCodeDuplicate
		}
	}
	r.s.nextCatalogID++
	e.ID = r.s.nextCatalogID
	r.s.catalogEntries[e.ID] = *e
	return nil
}

func (r *memCatalogRepo) FindByID(ctx context.Context, id uint) (*catalog.Entry, error) {
	e, ok := r.s.catalogEntries[id]
	if !ok {
		return nil, catalog.ErrEntryNotFound
	}
	return &e, nil
}

func (r *memCatalogRepo) FindByCode(ctx context.Context, productCode string) (*catalog.Entry, error) {
	for _, e := range r.s.catalogEntries {
		if e.ProductCode == productCode {
			copied := e
			return &copied, nil
		}
	}
	return nil, catalog.ErrEntryNotFound
}

func (r *memCatalogRepo) LockByID(ctx context.Context, id uint) (*catalog.Entry, error) {
	return r.FindByID(ctx, id)
}

func (r *memCatalogRepo) LockByCode(ctx context.Context, productCode string) (*catalog.Entry, error) {
	return r.FindByCode(ctx, productCode)
}

func (r *memCatalogRepo) Update(ctx context.Context, e *catalog.Entry) error {
	if _, ok := r.s.catalogEntries[e.ID]; !ok {
		return catalog.ErrEntryNotFound
	}
	r.s.catalogEntries[e.ID] = *e
	return nil
}

func (r *memCatalogRepo) ListListed(ctx context.Context, params catalog.ListParams) ([]*catalog.Entry, int64, error) {
	var out []*catalog.Entry
	for _, e := range r.s.catalogEntries {
		if e.Listed {
			copied := e
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) Create(ctx context.Context, e *inventory.Entry) error {
	key := sellerProduct{e.SellerID, e.ProductID}
	if _, ok := r.s.inventories[key]; ok {
		return apperrors.New(apperrors.ErrCodeDuplicateEntry, "库存记录已存在")
	}
	r.s.nextInventoryID++
	e.ID = r.s.nextInventoryID
	r.s.inventories[key] = *e
	return nil
}

func (r *memInventoryRepo) LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*inventory.Entry, error) {
	e, ok := r.s.inventories[sellerProduct{sellerID, productID}]
	if !ok {
		return nil, inventory.ErrEntryNotFound
	}
	return &e, nil
}

func (r *memInventoryRepo) Update(ctx context.Context, e *inventory.Entry) error {
	key := sellerProduct{e.SellerID, e.ProductID}
	if _, ok := r.s.inventories[key]; !ok {
		return inventory.ErrEntryNotFound
	}
	r.s.inventories[key] = *e
	return nil
}

func (r *memInventoryRepo) FindBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*inventory.Entry, error) {
	return r.LockBySellerAndProduct(ctx, sellerID, productID)
}

func (r *memInventoryRepo) ListBySeller(ctx context.Context, sellerID uint) ([]*inventory.Entry, error) {
	var out []*inventory.Entry
	for k, e := range r.s.inventories {
		if k.sellerID == sellerID {
			copied := e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) ListByProduct(ctx context.Context, productID uint) ([]*inventory.Entry, error) {
	var out []*inventory.Entry
	for k, e := range r.s.inventories {
		if k.productID == productID {
			copied := e
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memListingRepo struct{ s *memStore }

func (r *memListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	for _, existing := range r.s.listings {
		if existing.SellerID == l.SellerID && existing.ProductID == l.ProductID {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "挂牌记录已存在")
		}
	}
	r.s.nextListingID++
	l.ID = r.s.nextListingID
	r.s.listings[l.ID] = *l
	return nil
}

func (r *memListingRepo) LockByID(ctx context.Context, id uint) (*listing.Listing, error) {
	l, ok := r.s.listings[id]
	if !ok {
		return nil, listing.ErrListingNotFound
	}
	return &l, nil
}

func (r *memListingRepo) LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*listing.Listing, error) {
	for _, l := range r.s.listings {
		if l.SellerID == sellerID && l.ProductID == productID {
			copied := l
			return &copied, nil
		}
	}
	return nil, listing.ErrListingNotFound
}

func (r *memListingRepo) Update(ctx context.Context, l *listing.Listing) error {
	if _, ok := r.s.listings[l.ID]; !ok {
		return listing.ErrListingNotFound
	}
	r.s.listings[l.ID] = *l
	return nil
}

func (r *memListingRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.s.listings[id]; !ok {
		return listing.ErrListingNotFound
	}
	delete(r.s.listings, id)
	return nil
}

func (r *memListingRepo) ListBySeller(ctx context.Context, sellerID uint) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for _, l := range r.s.listings {
		if l.SellerID == sellerID {
			copied := l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memListingRepo) ListByProduct(ctx context.Context, productID uint) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for _, l := range r.s.listings {
		if l.ProductID == productID {
			copied := l
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Append(ctx context.Context, e *ledger.Entry) error {
	r.s.nextLedgerID++
	e.ID = r.s.nextLedgerID
	r.s.ledgerEntries = append(r.s.ledgerEntries, *e)
	return nil
}

func (r *memLedgerRepo) ListByBuyer(ctx context.Context, buyerID uint, page, pageSize int) ([]*ledger.Entry, int64, error) {
	var out []*ledger.Entry
	for i := range r.s.ledgerEntries {
		if r.s.ledgerEntries[i].BuyerID == buyerID {
			copied := r.s.ledgerEntries[i]
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memLedgerRepo) ListByProduct(ctx context.Context, productID uint) ([]*ledger.Entry, error) {
	var out []*ledger.Entry
	for i := range r.s.ledgerEntries {
		if r.s.ledgerEntries[i].ProductID == productID {
			copied := r.s.ledgerEntries[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memAccountRepo struct{ s *memStore }

func (r *memAccountRepo) Create(ctx context.Context, a *account.Account) error {
	r.s.accounts[a.UserID] = *a
	return nil
}

func (r *memAccountRepo) FindByUserID(ctx context.Context, userID uint) (*account.Account, error) {
	a, ok := r.s.accounts[userID]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

func (r *memAccountRepo) LockByUserID(ctx context.Context, userID uint) (*account.Account, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *memAccountRepo) Update(ctx context.Context, a *account.Account) error {
	if _, ok := r.s.accounts[a.UserID]; !ok {
		return account.ErrAccountNotFound
	}
	r.s.accounts[a.UserID] = *a
	return nil
}

// =========================================
// 测试装配
// =========================================

// engineFixture 引擎测试装配:全部用例共享同一内存存储
type engineFixture struct {
	store    *memStore
	txRunner *memTxRunner

	catalogRepo   *memCatalogRepo
	inventoryRepo *memInventoryRepo
	listingRepo   *memListingRepo
	ledgerRepo    *memLedgerRepo
	accountRepo   *memAccountRepo

	buy    *BuyStockUseCase
	create *CreateListingUseCase
	update *UpdateListingUseCase
	del    *DeleteListingUseCase
}

func newEngineFixture() *engineFixture {
	store := newMemStore()
	txRunner := &memTxRunner{store: store}

	catalogRepo := &memCatalogRepo{s: store}
	inventoryRepo := &memInventoryRepo{s: store}
	listingRepo := &memListingRepo{s: store}
	ledgerRepo := &memLedgerRepo{s: store}
	accountRepo := &memAccountRepo{s: store}

	// 事件发布器不接MQ(nil发布器静默跳过),缓存不接
	notifier := projection.NewNotifier(nil)

	return &engineFixture{
		store:         store,
		txRunner:      txRunner,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		buy: NewBuyStockUseCase(
			catalogRepo, inventoryRepo, ledgerRepo, accountRepo, txRunner, notifier, nil),
		create: NewCreateListingUseCase(inventoryRepo, listingRepo, txRunner, notifier),
		update: NewUpdateListingUseCase(inventoryRepo, listingRepo, txRunner, notifier),
		del:    NewDeleteListingUseCase(inventoryRepo, listingRepo, txRunner, notifier),
	}
}

// seedCatalog 播种一个在售商品,返回条目ID
func (f *engineFixture) seedCatalog(productCode string, price int64, quantity int) uint {
	entry := catalog.NewEntry(productCode, "测试商品-"+productCode, "测试描述", price, quantity, "测试", "")
	_ = (&memCatalogRepo{s: f.store}).Create(context.Background(), entry)
	return entry.ID
}

// seedAccount 播种账户余额
func (f *engineFixture) seedAccount(userID uint, balance int64) {
	a := account.NewAccount(userID, balance)
	_ = (&memAccountRepo{s: f.store}).Create(context.Background(), a)
}
