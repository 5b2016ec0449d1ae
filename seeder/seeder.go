package seeder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/opsdash/india-ops/catalog"
	"github.com/opsdash/india-ops/models"
	"github.com/opsdash/india-ops/sampler"
	"github.com/opsdash/india-ops/utils"
)

const dateLayout = "2006-01-02"

// Join dates reach back from the window end by at least these offsets, so the
// window must span the largest of them or the draw range collapses.
const (
	agentJoinBackDays    = 90
	customerJoinBackDays = 30
)

// ErrInvalidParams marks a generation configuration that can never produce a
// consistent dataset. Raised before any row is written.
var ErrInvalidParams = errors.New("seeder: invalid generation parameters")

// Params fixes one generation run. Everything except the seed comes from the
// catalog constants; tests shrink the counts.
type Params struct {
	Seed      int64
	Customers int
	Orders    int
	Tickets   int
	Start     time.Time
	End       time.Time
}

// DefaultParams returns the production dataset shape with the given seed.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:      seed,
		Customers: catalog.CustomerCount,
		Orders:    catalog.OrderCount,
		Tickets:   catalog.TicketCount,
		Start:     catalog.WindowStart,
		End:       catalog.WindowEnd,
	}
}

func (p Params) Validate() error {
	if !p.End.After(p.Start) {
		return fmt.Errorf("%w: end %s not after start %s",
			ErrInvalidParams, p.End.Format(dateLayout), p.Start.Format(dateLayout))
	}
	if p.Customers < 0 || p.Orders < 0 || p.Tickets < 0 {
		return fmt.Errorf("%w: negative target count", ErrInvalidParams)
	}
	if p.Customers == 0 && (p.Orders > 0 || p.Tickets > 0) {
		return fmt.Errorf("%w: orders and tickets require at least one customer", ErrInvalidParams)
	}
	if p.Orders == 0 && p.Tickets > 0 {
		return fmt.Errorf("%w: tickets require at least one order", ErrInvalidParams)
	}
	if days := int(p.End.Sub(p.Start).Hours() / 24); days < agentJoinBackDays {
		return fmt.Errorf("%w: window spans %d days, need at least %d for join dates",
			ErrInvalidParams, days, agentJoinBackDays)
	}
	return nil
}

// Dataset holds one fully generated run before it is committed.
type Dataset struct {
	Agents    []models.Agent
	Customers []models.Customer
	Orders    []models.Order
	Tickets   []models.Ticket
	Returns   []models.Return
}

// Generate runs the full staged pipeline in memory:
//
//	agents/customers → orders → spend aggregation → tier resolve → tickets → returns
//
// Each stage is a hard barrier: a later stage only ever reads finished output
// of earlier ones. Given equal Params the result is identical draw for draw.
func Generate(p Params) (*Dataset, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &generator{p: p, smp: sampler.New(p.Seed)}

	ds := &Dataset{}
	var err error
	if ds.Agents, err = g.agents(); err != nil {
		return nil, err
	}
	if ds.Customers, err = g.customers(); err != nil {
		return nil, err
	}
	if ds.Orders, err = g.orders(ds.Customers); err != nil {
		return nil, err
	}
	resolveTiers(ds.Customers, deliveredSpend(ds.Orders))
	if ds.Tickets, err = g.tickets(ds.Customers, ds.Agents, ds.Orders); err != nil {
		return nil, err
	}
	if ds.Returns, err = g.returns(ds.Orders); err != nil {
		return nil, err
	}
	return ds, nil
}

type generator struct {
	p   Params
	smp *sampler.Sampler
}

func (g *generator) totalDays() int {
	return int(g.p.End.Sub(g.p.Start).Hours() / 24)
}

// dateDaysBack mirrors the join-date draw: a day between minBack and the
// window start, measured back from the window end.
func (g *generator) dateDaysBack(minBack int) string {
	back := g.smp.IntBetween(minBack, g.totalDays())
	return g.p.End.AddDate(0, 0, -back).Format(dateLayout)
}

func (g *generator) agents() ([]models.Agent, error) {
	seq := NewSequence("AGT", 3)
	agents := make([]models.Agent, 0, len(catalog.AgentNames))
	for _, name := range catalog.AgentNames {
		agents = append(agents, models.Agent{
			AgentID:   seq.Next(),
			AgentName: name,
			Team:      g.smp.Pick(catalog.Teams),
			Shift:     g.smp.Pick(catalog.Shifts),
			State:     g.smp.Pick(catalog.States),
			JoinDate:  g.dateDaysBack(agentJoinBackDays),
		})
	}
	return agents, nil
}

func (g *generator) customers() ([]models.Customer, error) {
	seq := NewSequence("CUST", 5)
	customers := make([]models.Customer, 0, g.p.Customers)
	for i := 0; i < g.p.Customers; i++ {
		name := g.smp.Pick(catalog.FirstNames) + " " + g.smp.Pick(catalog.LastNames)
		state := g.smp.Pick(catalog.States)
		city := g.smp.Pick(catalog.StateCities[state])
		segment, err := g.smp.WeightedChoice(catalog.Segments, catalog.SegmentWeights)
		if err != nil {
			return nil, err
		}
		status, err := g.smp.WeightedChoice(catalog.CustomerStatuses, catalog.CustomerStatusW)
		if err != nil {
			return nil, err
		}
		ageGroup, err := g.smp.WeightedChoice(catalog.AgeGroups, catalog.AgeWeights)
		if err != nil {
			return nil, err
		}
		customers = append(customers, models.Customer{
			CustomerID: seq.Next(),
			FullName:   name,
			Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@gmail.com",
			Phone:      fmt.Sprintf("+91-%d", g.smp.Int63Between(7000000000, 9999999999)),
			City:       city,
			State:      state,
			Zone:       catalog.StateZones[state],
			Pincode:    g.pincode(state),
			Segment:    segment,
			Tier:       catalog.LowestTier, // placeholder until tier resolution
			JoinDate:   g.dateDaysBack(customerJoinBackDays),
			Status:     status,
			AgeGroup:   ageGroup,
		})
	}
	return customers, nil
}

func (g *generator) pincode(state string) string {
	prefix, ok := catalog.StatePinPrefix[state]
	if !ok {
		prefix = g.smp.IntBetween(1, 8)
	}
	return fmt.Sprintf("%d%d", prefix, g.smp.IntBetween(10000, 99999))
}

func (g *generator) orders(customers []models.Customer) ([]models.Order, error) {
	categoryWeights := make([]float64, len(catalog.Categories))
	for i, cat := range catalog.Categories {
		categoryWeights[i] = cat.Weight
	}

	seq := NewSequence("ORD", 6)
	orders := make([]models.Order, 0, g.p.Orders)
	for i := 0; i < g.p.Orders; i++ {
		cust := customers[g.smp.IntBetween(0, len(customers)-1)]

		orderDate := g.smp.SeasonalDate(g.p.Start, g.p.End, catalog.MonthWeight)

		catIdx, err := g.smp.WeightedIndex(categoryWeights)
		if err != nil {
			return nil, err
		}
		cat := catalog.Categories[catIdx]
		product := g.smp.Pick(cat.Products)

		base := sampler.Round2(g.smp.Between(cat.PriceLo, cat.PriceHi))
		base = sampler.Round2(base * catalog.SegmentMultiplier[cust.Segment])
		gst := sampler.Round2(base * cat.GSTPct / 100)
		discount := sampler.Round2(base * g.smp.Between(0, 0.25))
		final := sampler.Round2(base + gst - discount)

		payment, err := g.smp.WeightedChoice(catalog.PaymentMethods, catalog.PaymentWeights)
		if err != nil {
			return nil, err
		}
		status, err := g.smp.WeightedChoice(catalog.OrderStatuses, catalog.OrderWeights)
		if err != nil {
			return nil, err
		}

		// North and West zones sit closer to the main fulfilment hubs.
		var deliveryDays int
		if cust.Zone == "North" || cust.Zone == "West" {
			deliveryDays = g.smp.IntBetween(2, 10)
		} else {
			deliveryDays = g.smp.IntBetween(3, 14)
		}

		orders = append(orders, models.Order{
			OrderID:       seq.Next(),
			CustomerID:    cust.CustomerID,
			OrderDate:     orderDate.Format(dateLayout),
			DeliveryDate:  orderDate.AddDate(0, 0, deliveryDays).Format(dateLayout),
			Amount:        base,
			GSTAmount:     gst,
			Discount:      discount,
			FinalAmount:   final,
			Category:      cat.Name,
			ProductName:   product,
			PaymentMethod: payment,
			OrderStatus:   status,
			City:          cust.City,
			State:         cust.State,
			Zone:          cust.Zone,
			DeliveryDays:  deliveryDays,
			IsReturned:    status == models.OrderReturned,
		})
	}
	return orders, nil
}

// deliveredSpend aggregates final amounts of delivered orders per customer.
// It is a pure pass over the finished orders slice: only Delivered rows
// contribute, and nothing else ever feeds tier assignment.
func deliveredSpend(orders []models.Order) map[string]float64 {
	spend := make(map[string]float64)
	for _, o := range orders {
		if o.OrderStatus == models.OrderDelivered {
			spend[o.CustomerID] += o.FinalAmount
		}
	}
	return spend
}

// resolveTiers overwrites each customer's placeholder tier from its
// delivered-order spend. This runs strictly after all orders exist; no order
// generated later may change a tier.
func resolveTiers(customers []models.Customer, spend map[string]float64) {
	for i := range customers {
		customers[i].Tier = catalog.TierFor(spend[customers[i].CustomerID])
	}
}

func (g *generator) tickets(customers []models.Customer, agents []models.Agent, orders []models.Order) ([]models.Ticket, error) {
	seq := NewSequence("TKT", 6)
	tickets := make([]models.Ticket, 0, g.p.Tickets)
	for i := 0; i < g.p.Tickets; i++ {
		// Customer, agent and order are drawn independently from their pools.
		cust := customers[g.smp.IntBetween(0, len(customers)-1)]
		agent := agents[g.smp.IntBetween(0, len(agents)-1)]
		order := orders[g.smp.IntBetween(0, len(orders)-1)]

		category := g.smp.Pick(catalog.TicketCategories)
		priority, err := g.smp.WeightedChoice(catalog.TicketPriorities, catalog.TicketPriorityW)
		if err != nil {
			return nil, err
		}
		status, err := g.smp.WeightedChoice(catalog.TicketStatuses, catalog.TicketStatusW)
		if err != nil {
			return nil, err
		}

		created := g.smp.DateBetween(g.p.Start, g.p.End)
		hours := catalog.ResolutionHours[priority]
		resolution := sampler.Round2(g.smp.Between(hours[0], hours[1]))
		firstRespHi := resolution * 0.5
		if firstRespHi < 0.25 {
			firstRespHi = 0.25
		}
		firstResp := sampler.Round2(g.smp.Between(0.25, firstRespHi))
		resolved := created.Add(time.Duration(resolution * float64(time.Hour)))

		tickets = append(tickets, models.Ticket{
			TicketID:       seq.Next(),
			CustomerID:     cust.CustomerID,
			AgentID:        agent.AgentID,
			OrderID:        order.OrderID,
			CreatedDate:    created.Format(dateLayout),
			ResolvedDate:   resolved.Format(dateLayout),
			TicketCategory: category,
			Priority:       priority,
			Status:         status,
			CSATScore:      g.smp.NormalClamped(3.9, 0.7, 1, 5),
			ResolutionH:    resolution,
			FirstResponseH: firstResp,
			IsRepeat:       g.smp.Bernoulli(0.18),
			State:          cust.State,
		})
	}
	return tickets, nil
}

// returns emits exactly one Return per returned order, in order-ID order.
func (g *generator) returns(orders []models.Order) ([]models.Return, error) {
	seq := NewSequence("RET", 5)
	var returns []models.Return
	for _, o := range orders {
		if !o.IsReturned {
			continue
		}
		orderDate, _ := time.Parse(dateLayout, o.OrderDate)
		refund := sampler.Round2(o.FinalAmount * g.smp.Between(0.85, 1.0))
		if refund > o.FinalAmount {
			// Rounding may not push the refund past the order amount.
			refund = o.FinalAmount
		}
		status, err := g.smp.WeightedChoice(catalog.RefundStatuses, catalog.RefundWeights)
		if err != nil {
			return nil, err
		}
		returns = append(returns, models.Return{
			ReturnID:     seq.Next(),
			OrderID:      o.OrderID,
			CustomerID:   o.CustomerID,
			ReturnDate:   orderDate.AddDate(0, 0, g.smp.IntBetween(1, 7)).Format(dateLayout),
			Reason:       g.smp.Pick(catalog.ReturnReasons),
			RefundAmount: refund,
			RefundStatus: status,
			State:        o.State,
		})
	}
	return returns, nil
}

// Seeder owns the persistence side of generation: migration, the
// skip-if-seeded check and the single-transaction commit.
type Seeder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Migrate creates the five tables if they do not exist.
func (s *Seeder) Migrate() error {
	return s.db.AutoMigrate(
		&models.Customer{}, &models.Order{}, &models.Agent{},
		&models.Ticket{}, &models.Return{},
	)
}

// Seeded reports whether a prior run already populated the store.
func (s *Seeder) Seeded() (bool, error) {
	var n int64
	if err := s.db.Model(&models.Customer{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("seeder: count customers: %w", err)
	}
	return n > 0, nil
}

// Run generates and commits the dataset. A previously seeded store is left
// untouched: a successful run is never regenerated or mutated. All five
// tables are written inside one transaction, so a failure leaves no partial
// table behind.
func (s *Seeder) Run(p Params) error {
	if err := s.Migrate(); err != nil {
		return fmt.Errorf("seeder: migrate: %w", err)
	}
	seeded, err := s.Seeded()
	if err != nil {
		return err
	}
	if seeded {
		if utils.InfoLogger != nil {
			utils.InfoLogger.Printf("seeder: store already populated, skipping generation")
		}
		return nil
	}

	ds, err := Generate(p)
	if err != nil {
		return err
	}

	const batchSize = 500
	insert := func(tx *gorm.DB, label string, rows interface{}, n int) error {
		if n == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("insert %s: %w", label, err)
		}
		return nil
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := insert(tx, "agents", ds.Agents, len(ds.Agents)); err != nil {
			return err
		}
		if err := insert(tx, "customers", ds.Customers, len(ds.Customers)); err != nil {
			return err
		}
		if err := insert(tx, "orders", ds.Orders, len(ds.Orders)); err != nil {
			return err
		}
		if err := insert(tx, "tickets", ds.Tickets, len(ds.Tickets)); err != nil {
			return err
		}
		return insert(tx, "returns", ds.Returns, len(ds.Returns))
	})
	if err != nil {
		return fmt.Errorf("seeder: commit: %w", err)
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("seeder: committed %d customers, %d orders, %d tickets, %d agents, %d returns (seed=%d)",
			len(ds.Customers), len(ds.Orders), len(ds.Tickets), len(ds.Agents), len(ds.Returns), p.Seed)
	}
	return nil
}
