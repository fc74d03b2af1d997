// Package client implements the state machine described in spec.md
// §4.4: it drives a session through login, character selection, and
// world entry, maintains the local world model, and exchanges
// ClientEvent/ClientCommand values with a UI collaborator over
// unbounded channels so a slow UI never blocks the socket.
package client

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	channels "gopkg.in/eapache/channels.v1"

	"github.com/holtburger/holtburger/internal/messages"
	"github.com/holtburger/holtburger/internal/metrics"
	"github.com/holtburger/holtburger/internal/world"
)

const (
	logonRetryMaxAttempts  = 6
	logonRetryInitialSecs  = 5
	enterRetryMaxAttempts  = 6
	enterRetryInitialSecs  = 5
	retryTickInterval      = time.Second
)

// Session is the subset of *session.Session the client depends on,
// narrowed to an interface so the event loop can be driven by a fake in
// tests without a live socket.
type Session interface {
	Connect(account, password, clientVersion string) error
	Run()
	Messages() <-chan []byte
	SendMessage(payload []byte) error
	Disconnect() error
	Halt()
	Wait()
	CurrentServerTime() float64
}

// Client drives one account session through the states spec.md §4.4
// names. The world model (entities, player) is single-owner: only the
// event loop goroutine touches it.
type Client struct {
	log     *log.Logger
	session Session

	account       string
	credential    *Credential
	clientVersion string

	events   *channels.InfiniteChannel
	commands *channels.InfiniteChannel

	state        State
	characters   []messages.CharacterEntry
	pendingGUID  world.Guid
	entities     *world.EntityManager
	player       *world.Player

	logonRetry RetryState
	enterRetry RetryState

	gameActionSeq uint32

	Metrics *metrics.Registry
}

// NewClient constructs a Client bound to sess. Call Run to start the
// event loop after a successful handshake.
func NewClient(sess Session, account string, credential *Credential, clientVersion string) *Client {
	return &Client{
		log:           log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "client"}),
		session:       sess,
		account:       account,
		credential:    credential,
		clientVersion: clientVersion,
		events:        channels.NewInfiniteChannel(),
		commands:      channels.NewInfiniteChannel(),
		state:         Connected,
		entities:      world.NewEntityManager(),
		logonRetry:    NewRetryState(logonRetryMaxAttempts, logonRetryInitialSecs),
		enterRetry:    NewRetryState(enterRetryMaxAttempts, enterRetryInitialSecs),
	}
}

// Events is the outward ClientEvent stream a UI collaborator drains.
func (c *Client) Events() <-chan interface{} { return c.events.Out() }

// Commands is the inward ClientCommand sink a UI collaborator feeds.
// Sends never block regardless of how slow the event loop is running.
func (c *Client) Commands() chan<- interface{} { return c.commands.In() }

// Submit is a typed convenience wrapper over Commands().
func (c *Client) Submit(cmd ClientCommand) { c.commands.In() <- cmd }

func (c *Client) emit(ev ClientEvent) {
	c.events.In() <- ev
}

func (c *Client) setState(st State) {
	if c.state == st {
		return
	}
	prev := c.state
	c.state = st
	c.log.Debugf("state %s -> %s", prev, st)
	if c.Metrics != nil {
		c.Metrics.ConnectionState.Set(float64(st))
	}
	c.emit(StatusUpdateEvent{State: st, LogonRetry: &c.logonRetry, EnterRetry: &c.enterRetry})
}

// Connect runs the handshake, retrying with exponential backoff per
// spec.md §4.4 (5s, doubling, capped by MaxAttempts) until a
// CONNECT_REQUEST is observed or the attempt budget is exhausted.
func (c *Client) Connect() error {
	for {
		err := c.session.Connect(c.account, c.credential.String(), c.clientVersion)
		if err == nil {
			c.logonRetry.Reset(logonRetryInitialSecs)
			return nil
		}
		c.log.Warnf("handshake attempt failed: %v", err)
		if !c.logonRetry.Active {
			c.logonRetry.Arm(time.Now())
		}
		if wait := time.Until(c.logonRetry.NextTime); wait > 0 {
			time.Sleep(wait)
		}
		if _, exhausted := c.logonRetry.Tick(time.Now()); exhausted {
			c.setState(Disconnected)
			return fmt.Errorf("client: handshake failed after %d attempts: %w", c.logonRetry.Attempts, err)
		}
	}
}

// Run starts the session's background loops and the client's own event
// loop, and blocks until Quit is submitted or the session disconnects.
func (c *Client) Run() {
	c.session.Run()
	defer c.session.Wait()

	ticker := time.NewTicker(retryTickInterval)
	defer ticker.Stop()

	for {
		select {
		case body, ok := <-c.session.Messages():
			if !ok {
				c.setState(Disconnected)
				return
			}
			c.handleDecoded(messages.DecodeMessage(body))
		case raw := <-c.commands.Out():
			cmd, ok := raw.(ClientCommand)
			if !ok {
				continue
			}
			if _, isQuit := cmd.(QuitCmd); isQuit {
				c.quit()
				return
			}
			c.handleCommand(cmd)
		case now := <-ticker.C:
			c.tickRetries(now)
		}
	}
}

func (c *Client) quit() {
	if err := c.session.Disconnect(); err != nil {
		c.log.Debugf("disconnect send failed: %v", err)
	}
	c.session.Halt()
	c.setState(Disconnected)
}

func (c *Client) tickRetries(now time.Time) {
	if fire, exhausted := c.enterRetry.Tick(now); fire {
		if c.Metrics != nil {
			c.Metrics.RetryAttempts.Set(float64(c.enterRetry.Attempts))
		}
		if exhausted {
			c.log.Warnf("enter-world retry exhausted after %d attempts", c.enterRetry.Attempts)
			c.setState(Disconnected)
			return
		}
		c.log.Debugf("re-sending EnterWorldRequest for guid %#x (attempt %d)", c.pendingGUID, c.enterRetry.Attempts)
		c.sendEnterWorldRequest(c.pendingGUID)
	}
}

func (c *Client) sendEnterWorldRequest(guid world.Guid) {
	payload := messages.EncodeMessage(messages.OpCharacterEnterWorld, messages.CharacterEnterWorldData{
		GUID:    uint32(guid),
		Account: c.account,
	})
	if err := c.session.SendMessage(payload); err != nil {
		c.log.Debugf("enter-world request send failed: %v", err)
	}
}

// handleDecoded mutates the world model and emits a ClientEvent for one
// decoded message body, per spec.md §4.4's event-loop step (b).
func (c *Client) handleDecoded(msg messages.Message) {
	c.emit(GameMessageEvent{Message: msg})

	switch body := msg.Body.(type) {
	case *messages.CharacterListData:
		c.characters = body.Characters
		c.setState(CharacterSelection)
		c.emit(CharacterListEvent{Characters: body.Characters})

	case *messages.CharacterErrorData:
		c.handleCharacterError(body.ErrorCode)

	case *messages.ServerNameData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindInfo, Text: fmt.Sprintf("%s (%d/%d online)", body.Name, body.OnlineCount, body.OnlineCap)}})

	case *messages.ServerMessageData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindSystem, Text: body.Message}})

	case *messages.ObjectCreateData:
		c.handleObjectDescription(body.Object, nil)

	case *messages.PlayerCreateData:
		c.handleObjectDescription(body.Player.Object, body.Player.Enchantments)

	case *messages.ObjectDeleteData:
		c.entities.Remove(body.GUID)
		c.emit(WorldEventEnvelope{Event: EntityDespawned{GUID: world.Guid(body.GUID)}})

	case *messages.UpdatePositionData:
		c.updatePosition(body.GUID, body.Pos.Pos)

	case *messages.MovementEventData:
		c.updatePosition(body.GUID, body.Pos.Pos)

	case *messages.HearSpeechData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindChat, Text: body.Message, Sender: body.SenderName}})

	case *messages.TellData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindTell, Text: body.Message, Sender: body.SenderName}})

	case *messages.ChannelBroadcastData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindChat, Text: body.Message, Sender: body.SenderName}})

	case *messages.HearRangedSpeechData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindChat, Text: body.Message, Sender: body.SenderName}})

	case *messages.SoulEmoteData:
		c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindEmote, Text: body.Text, Sender: body.SenderName}})

	case messages.GameEvent:
		c.handleGameEvent(body)

	default:
		if msg.Body == nil {
			c.emit(RawMessageEvent{Bytes: msg.Raw})
		}
	}
}

func (c *Client) handleCharacterError(code uint32) {
	c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindError, Text: fmt.Sprintf("character error %#x", code)}})
	switch messages.CharacterErrorCode(code) {
	case messages.ErrorAccountAlreadyLoggedOn, messages.ErrorEnterGameCharacterInWorld:
		c.enterRetry.Arm(time.Now())
	}
}

func (c *Client) handleObjectDescription(obj messages.ObjectDescriptionData, enchantments []world.Enchantment) {
	entity := world.Entity{
		GUID:        obj.GUID,
		Name:        obj.Name,
		Position:    obj.Pos.Pos,
		ItemType:    obj.ItemType,
		HasItemType: true,
		Flags:       obj.DescFlags,
		Bag:         obj.Bag,
	}
	c.entities.Insert(entity)

	if c.state == EnteringWorld && world.Guid(obj.GUID) == c.pendingGUID {
		c.player = world.NewPlayer(entity)
		for _, e := range enchantments {
			c.player.ApplyEnchantment(e)
		}
		c.enterRetry.Reset(enterRetryInitialSecs)
		c.setState(InWorld)
		c.emit(PlayerEnteredEvent{GUID: world.Guid(obj.GUID), Name: obj.Name})
		c.emit(PlayerInfoSnapshot{Player: *c.player})
		return
	}

	c.emit(WorldEventEnvelope{Event: EntitySpawned{Entity: entity}})
}

func (c *Client) updatePosition(guid uint32, pos world.WorldPosition) {
	if e, ok := c.entities.Get(guid); ok {
		e.Position = pos
		c.entities.Insert(e)
	}
	if c.player != nil && c.player.Entity.GUID == guid {
		c.player.Entity.Position = pos
	}
	c.emit(WorldEventEnvelope{Event: EntityMoved{GUID: world.Guid(guid), Position: pos}})
}

func (c *Client) handleGameEvent(ev messages.GameEvent) {
	switch data := ev.Event.(type) {
	case messages.PlayerDescriptionData:
		c.handleObjectDescription(data.Object, data.Enchantments)
	case messages.MagicUpdateEnchantmentData:
		c.applyEnchantment(ev.Target, data.Enchantment)
	case messages.MagicUpdateMultipleEnchantmentsData:
		for _, e := range data.Enchantments {
			c.applyEnchantment(ev.Target, e)
		}
	case messages.MagicRemoveEnchantmentData:
		c.removeEnchantment(ev.Target, data.SpellID, data.Layer)
	case messages.MagicRemoveMultipleEnchantmentsData:
		for _, pair := range data.Spells {
			c.removeEnchantment(ev.Target, pair[0], pair[1])
		}
	case messages.MagicPurgeEnchantmentsData:
		if c.player != nil && c.player.Entity.GUID == ev.Target {
			c.player.PurgeEnchantments()
		}
		c.emit(WorldEventEnvelope{Event: EnchantmentsPurged{GUID: world.Guid(ev.Target)}})
	case messages.MagicPurgeBadEnchantmentsData:
		if c.player != nil && c.player.Entity.GUID == ev.Target {
			c.player.PurgeBadEnchantments()
		}
		c.emit(WorldEventEnvelope{Event: EnchantmentsPurged{GUID: world.Guid(ev.Target), BadOnly: true}})
	}
}

func (c *Client) applyEnchantment(target uint32, e world.Enchantment) {
	if c.player != nil && c.player.Entity.GUID == target {
		c.player.ApplyEnchantment(e)
	}
	c.emit(WorldEventEnvelope{Event: EnchantmentChanged{GUID: world.Guid(target), Enchantment: e}})
}

func (c *Client) removeEnchantment(target uint32, spellID, layer uint16) {
	if c.player != nil && c.player.Entity.GUID == target {
		c.player.RemoveEnchantment(spellID, layer)
	}
	c.emit(WorldEventEnvelope{Event: EnchantmentChanged{
		GUID:        world.Guid(target),
		Enchantment: world.Enchantment{SpellID: spellID, Layer: layer},
		Removed:     true,
	}})
}

// handleCommand turns one drained ClientCommand into outgoing wire
// traffic, per spec.md §4.4's event-loop step (c).
func (c *Client) handleCommand(cmd ClientCommand) {
	switch v := cmd.(type) {
	case SelectCharacterCmd:
		c.selectCharacter(v.GUID)
	case SelectCharacterByIndexCmd:
		if v.Index < 0 || v.Index >= len(c.characters) {
			c.emit(MessageEvent{Message: ChatMessage{Kind: ChatKindError, Text: "character index out of range"}})
			return
		}
		c.selectCharacter(world.Guid(c.characters[v.Index].GUID))
	case TalkCmd:
		c.sendAction(messages.TalkData{Text: v.Text})
	case PingCmd:
		c.sendAction(messages.LoginCompleteData{})
	case IdentifyCmd:
		c.sendAction(messages.IdentifyObjectData{Target: uint32(v.GUID)})
	case UseCmd:
		c.sendAction(messages.UseData{Target: uint32(v.GUID)})
	case DropCmd:
		c.sendAction(messages.DropItemData{Item: uint32(v.GUID)})
	case GetCmd:
		c.sendAction(messages.UseData{Target: uint32(v.GUID)})
	case MoveItemCmd:
		c.sendAction(messages.PutItemInContainerData{
			Item:      uint32(v.Item),
			Container: uint32(v.Container),
			Placement: v.Placement,
		})
	}
}

func (c *Client) selectCharacter(guid world.Guid) {
	if c.state != CharacterSelection {
		c.log.Warnf("select-character command ignored in state %s", c.state)
		return
	}
	c.pendingGUID = guid
	c.setState(EnteringWorld)
	c.enterRetry.Arm(time.Now())
	c.sendEnterWorldRequest(guid)
}

func (c *Client) sendAction(data messages.GameActionData) {
	c.gameActionSeq++
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(messages.OpGameAction))
	messages.PackGameAction(&buf, messages.GameAction{Sequence: c.gameActionSeq, Data: data})
	if err := c.session.SendMessage(buf); err != nil {
		c.log.Debugf("action send failed: %v", err)
	}
}
