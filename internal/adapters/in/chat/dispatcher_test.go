package chat_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"shipquote/internal/adapters/in/chat"
	"shipquote/internal/adapters/out/memory/sessionrepo"
	"shipquote/internal/adapters/out/postgres"
	"shipquote/internal/adapters/out/routing"
	"shipquote/internal/core/application/usecases/commands"
	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/core/ports"
	"shipquote/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const tierMenu = "\n1. Premium ($3 per km). For very large or heavy loads" +
	"\n2. Standard ($2 per km). For medium load" +
	"\n3. Economy ($0.5 per km). For small parcels up to 50 kg"

type recordingMessenger struct {
	mu      sync.Mutex
	replies []ports.Reply
	err     error
}

func (m *recordingMessenger) Send(_ context.Context, _ kernel.ConversationID, reply ports.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.replies = append(m.replies, reply)
	return nil
}

func (m *recordingMessenger) take() []ports.Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	replies := m.replies
	m.replies = nil
	return replies
}

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type brokenUoW struct{ commands.OrderUoW }

func (brokenUoW) Begin(context.Context) error    { return errors.New("database is read-only") }
func (brokenUoW) Rollback(context.Context) error { return nil }

type DispatcherTestSuite struct {
	suite.Suite
	db         *gorm.DB
	sessions   *sessionrepo.Repository
	messenger  *recordingMessenger
	uowFactory commands.OrderUoWFactory
	dispatcher *chat.Dispatcher
	chatID     kernel.ConversationID
}

func TestDispatcher(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	var err error
	s.db, err = db.OpenSQLite(filepath.Join(s.T().TempDir(), "chat.db"), nil)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(s.db))

	gormFactory := postgres.NewGormUnitOfWorkFactory(s.db)
	s.uowFactory = funcOrderUoWFactory(func() commands.OrderUoW { return gormFactory.Create() })
	s.sessions = sessionrepo.NewRepository()
	s.messenger = &recordingMessenger{}
	s.chatID, _ = kernel.NewConversationID(4242)
	s.dispatcher = s.newDispatcher(s.uowFactory)
}

func (s *DispatcherTestSuite) TearDownTest() {
	_ = db.Close(s.db)
}

func (s *DispatcherTestSuite) newDispatcher(uowFactory commands.OrderUoWFactory) *chat.Dispatcher {
	catalog := tier.DefaultCatalog()
	start := commands.NewStartIntakeCommandHandler(s.sessions, catalog)
	submit := commands.NewSubmitReplyCommandHandler(
		s.sessions,
		routing.NewStaticProvider(routing.DemoPairs()),
		services.NewPricingModel(),
		uowFactory,
	)
	cancel := commands.NewCancelIntakeCommandHandler(s.sessions)
	list := queries.NewListOrdersQueryHandler(s.db)

	d, err := chat.NewDispatcher(chat.Handlers{
		StartIntake:  &start,
		SubmitReply:  &submit,
		CancelIntake: &cancel,
		ListOrders:   list,
	}, catalog, s.messenger, "support@example.com", nil)
	s.Require().NoError(err)
	return d
}

func (s *DispatcherTestSuite) say(text string) []ports.Reply {
	s.T().Helper()
	s.Require().NoError(s.dispatcher.Handle(s.T().Context(), chat.Update{Conversation: s.chatID, Text: text}))
	return s.messenger.take()
}

func texts(replies []ports.Reply) []string {
	out := make([]string, 0, len(replies))
	for _, r := range replies {
		out = append(out, r.Text)
	}
	return out
}

func (s *DispatcherTestSuite) TestStandardQuoteIsRecorded() {
	s.Equal([]string{"Let's order your delivery. Please enter the weight of the shipment (in kg):"},
		texts(s.say("/order_delivery")))
	s.Equal([]string{"Please enter the dimensions of the shipment (length x width x height in cm):"},
		texts(s.say("12.5")))
	s.Equal([]string{"Please enter the origin of the shipment:"}, texts(s.say("30x20x15")))
	s.Equal([]string{"Please enter the destination of the shipment:"}, texts(s.say("Kyiv")))

	tierReplies := s.say("Lviv")
	s.Require().Len(tierReplies, 1)
	s.Equal("Please select the type of delivery:"+tierMenu, tierReplies[0].Text)
	s.Equal([]string{"Premium", "Standard", "Economy"}, tierReplies[0].Options)

	s.Equal([]string{
		"The estimated cost for shipping from Kyiv to Lviv using Standard delivery is $1085.00.",
		"The distance is 540 km and it takes approximately 7 hours 48 mins.",
	}, texts(s.say("Standard")))

	s.Equal([]string{
		"Order:\nWeight: 12.5 kg\nDimensions: 30x20x15 cm\nFrom: Kyiv\nTo: Lviv\nType: Standard\n" +
			"Distance: 540 km\nDuration: 7 hours 48 mins\nCost: $1085.00",
	}, texts(s.say("/all_current_orders")))

	s.Equal(0, s.sessions.Len())
}

func (s *DispatcherTestSuite) TestQuickEstimateRecordsNothing() {
	for _, text := range []string{"/estimate_cost", "12.5", "30x20x15", "Kyiv", "Lviv"} {
		s.say(text)
	}

	s.Equal([]string{
		"The estimated cost for shipping from Kyiv to Lviv using Standard delivery is $1111.80.",
		"The distance is 540 km and it takes approximately 7 hours 48 mins.",
	}, texts(s.say("Standard")))

	s.Equal([]string{"No orders found. Please use /order_delivery to create an order."},
		texts(s.say("/all_current_orders")))
}

func (s *DispatcherTestSuite) TestInvalidRepliesArePromptedAgain() {
	s.say("/order_delivery")

	s.Equal([]string{"Invalid input. Please enter a numerical value for the weight:"}, texts(s.say("heavy")))
	s.Equal([]string{"Invalid input. Please enter a numerical value for the weight:"}, texts(s.say("-3")))
	s.say("12.5")

	s.Equal([]string{"Invalid input. Please enter the dimensions in the format length x width x height:"},
		texts(s.say("30x20")))
	s.say("30x20x15")

	s.Equal([]string{"The answer must not be empty. Please enter the origin of the shipment:"},
		texts(s.say("   ")))
	s.say("Kyiv")
	s.say("Lviv")

	for range 3 {
		replies := s.say("Deluxe")
		s.Require().Len(replies, 1)
		s.Equal("Invalid choice. Please select the type of delivery:"+tierMenu, replies[0].Text)
		s.Equal([]string{"Premium", "Standard", "Economy"}, replies[0].Options)
	}

	s.Len(s.say("Premium"), 2)
}

func (s *DispatcherTestSuite) TestQuoteUnavailable() {
	for _, text := range []string{"/order_delivery", "1", "1x1x1", "Kyiv", "Atlantis"} {
		s.say(text)
	}

	s.Equal([]string{chat.TextQuoteUnavailable}, texts(s.say("Economy")))
	s.Equal("Unable to calculate the distance. Please check the origin and destination addresses.",
		chat.TextQuoteUnavailable)

	s.Equal([]string{"No orders found. Please use /order_delivery to create an order."},
		texts(s.say("/all_current_orders")))
	s.Equal(0, s.sessions.Len())
}

func (s *DispatcherTestSuite) TestOrderNotStoredIsNeverConfirmed() {
	s.dispatcher = s.newDispatcher(funcOrderUoWFactory(func() commands.OrderUoW { return brokenUoW{} }))

	for _, text := range []string{"/order_delivery", "1", "1x1x1", "Kyiv", "Lviv"} {
		s.say(text)
	}

	err := s.dispatcher.Handle(s.T().Context(), chat.Update{Conversation: s.chatID, Text: "Standard"})

	s.Require().ErrorIs(err, commands.ErrOrderNotStored)
	s.Equal([]string{chat.TextOrderNotStored}, texts(s.messenger.take()))
	s.Equal(0, s.sessions.Len())
}

func (s *DispatcherTestSuite) TestStopIsIdempotent() {
	s.say("/order_delivery")
	s.say("12.5")

	stopped := "The order process has been stopped. Use /order_delivery to start again."
	s.Equal([]string{stopped}, texts(s.say("/stop")))
	s.Equal([]string{stopped}, texts(s.say("/stop")))
	s.Equal([]string{stopped}, texts(s.say("/cancel")))

	s.Equal([]string{
		"There is no order in progress. Use /order_delivery to order a delivery " +
			"or /estimate_cost to estimate the shipping cost.",
	}, texts(s.say("30x20x15")))
}

func (s *DispatcherTestSuite) TestRestartDiscardsDraft() {
	s.say("/order_delivery")
	s.say("12.5")
	s.say("/order_delivery")

	s.Equal([]string{"Please enter the dimensions of the shipment (length x width x height in cm):"},
		texts(s.say("7")))
}

func (s *DispatcherTestSuite) TestCalculateVolume() {
	s.Equal([]string{"Please enter the dimensions of the shipment (length x width x height in cm):"},
		texts(s.say("/calculate_volume")))
	s.Equal([]string{"Volume is: 1000000 cm3", "Economy"}, texts(s.say("100x100x100")))

	s.Equal([]string{"Volume is: 6000000 cm3", "No suitable transport found"},
		texts(s.say("/calculate_volume 600x100x100")))

	s.say("/calculate_volume")
	s.Equal([]string{"Invalid input. Please enter the dimensions in the format length x width x height:"},
		texts(s.say("big")))
}

func (s *DispatcherTestSuite) TestVolumeRequestDoesNotLeakIntoSession() {
	s.say("/order_delivery")
	s.say("/calculate_volume")
	s.say("100x100x100")

	s.Equal([]string{"Please enter the dimensions of the shipment (length x width x height in cm):"},
		texts(s.say("12.5")))
}

func (s *DispatcherTestSuite) TestInformationalCommands() {
	s.Equal([]string{"Welcome! Use /order_delivery to start ordering your delivery."},
		texts(s.say("/start@ShipQuoteBot")))

	transport := texts(s.say("/find_transport"))
	s.Require().Len(transport, 3)
	s.Equal("Type: Express\n"+
		"Description: For Express delivery, we use trucks and vans for fast and efficient transportation.\n"+
		"Limitations: Maximum weight: 3000 kg, Maximum dimensions: 5m x 2.5m x 2.5m", transport[0])

	s.Equal([]string{
		"You can request a commercial offer for the transportation of cargo by contacting our support team.\n" +
			"support@example.com",
	}, texts(s.say("/request_offer")))

	help := texts(s.say("/help"))
	s.Require().Len(help, 1)
	s.Contains(help[0], "/order_delivery")

	s.Equal([]string{"Unknown command. Use /help to see what I can do."}, texts(s.say("/track_shipment")))
}

func (s *DispatcherTestSuite) TestConversationsAreIndependent() {
	other, _ := kernel.NewConversationID(-77)

	s.say("/order_delivery")
	s.Require().NoError(s.dispatcher.Handle(s.T().Context(), chat.Update{Conversation: other, Text: "/estimate_cost"}))
	s.Require().NoError(s.dispatcher.Handle(s.T().Context(), chat.Update{Conversation: other, Text: "/stop"}))
	s.messenger.take()

	s.Equal([]string{"Please enter the dimensions of the shipment (length x width x height in cm):"},
		texts(s.say("12.5")))
}

func TestNewDispatcher(t *testing.T) {
	_, err := chat.NewDispatcher(chat.Handlers{}, nil, nil, "", nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "start intake handler")
	assert.ErrorContains(t, err, "messenger")
}

func TestDispatcher_Handle_ReportsUndeliveredReplies(t *testing.T) {
	sessions := sessionrepo.NewRepository()
	catalog := tier.DefaultCatalog()
	start := commands.NewStartIntakeCommandHandler(sessions, catalog)
	submit := commands.NewSubmitReplyCommandHandler(sessions, routing.NewStaticProvider(nil), services.NewPricingModel(), nil)
	cancel := commands.NewCancelIntakeCommandHandler(sessions)
	messenger := &recordingMessenger{err: errors.New("telegram is down")}

	d, err := chat.NewDispatcher(chat.Handlers{
		StartIntake:  &start,
		SubmitReply:  &submit,
		CancelIntake: &cancel,
		ListOrders:   queries.NewListOrdersQueryHandler(nil),
	}, catalog, messenger, "", nil)
	require.NoError(t, err)

	chatID, _ := kernel.NewConversationID(1)
	err = d.Handle(t.Context(), chat.Update{Conversation: chatID, Text: "/start"})

	require.EqualError(t, err, "telegram is down")
}
