package client

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/holtburger/holtburger/internal/messages"
	"github.com/holtburger/holtburger/internal/world"
)

// fakeSession is a minimal Session double: Run/Connect/CurrentServerTime
// are no-ops, Messages is driven by the test, and SendMessage/Disconnect/
// Halt record what the client attempted.
type fakeSession struct {
	msgs             chan []byte
	sent             [][]byte
	disconnectCalled bool
	haltCalled       bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{msgs: make(chan []byte, 8)}
}

func (f *fakeSession) Connect(account, password, clientVersion string) error { return nil }
func (f *fakeSession) Run()                                                  {}
func (f *fakeSession) Messages() <-chan []byte                               { return f.msgs }
func (f *fakeSession) SendMessage(payload []byte) error {
	f.sent = append(f.sent, payload)
	return nil
}
func (f *fakeSession) Disconnect() error          { f.disconnectCalled = true; return nil }
func (f *fakeSession) Halt()                      { f.haltCalled = true }
func (f *fakeSession) Wait()                      {}
func (f *fakeSession) CurrentServerTime() float64 { return 0 }

func newTestClient(sess Session) *Client {
	return NewClient(sess, "account", NewCredential("hunter2"), "1.0.0")
}

func drainEvents(c *Client, n int) []interface{} {
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, <-c.events.Out())
	}
	return out
}

func TestClientCharacterListEntersCharacterSelection(t *testing.T) {
	c := newTestClient(newFakeSession())

	list := messages.CharacterListData{
		Characters: []messages.CharacterEntry{
			{GUID: 0x50000001, Name: "Buddy"},
		},
		AccountName: "account",
	}
	payload := messages.EncodeMessage(messages.OpCharacterList, list)
	c.handleDecoded(messages.DecodeMessage(payload))

	require.Equal(t, CharacterSelection, c.state)
	require.Len(t, c.characters, 1)

	events := drainEvents(c, 3)
	var sawList, sawStatus bool
	for _, ev := range events {
		switch v := ev.(type) {
		case CharacterListEvent:
			sawList = true
			require.Equal(t, list.Characters, v.Characters)
		case StatusUpdateEvent:
			sawStatus = true
			require.Equal(t, CharacterSelection, v.State)
		}
	}
	require.True(t, sawList)
	require.True(t, sawStatus)
}

func TestClientSelectCharacterByIndexSendsEnterWorldRequest(t *testing.T) {
	sess := newFakeSession()
	c := newTestClient(sess)
	c.state = CharacterSelection
	c.characters = []messages.CharacterEntry{{GUID: 0x50000042, Name: "Hero"}}

	c.handleCommand(SelectCharacterByIndexCmd{Index: 0})

	require.Equal(t, EnteringWorld, c.state)
	require.True(t, c.enterRetry.Active)
	require.Len(t, sess.sent, 1)

	msg := messages.DecodeMessage(sess.sent[0])
	require.Equal(t, messages.OpCharacterEnterWorld, msg.Opcode)
	body, ok := msg.Body.(*messages.CharacterEnterWorldData)
	require.True(t, ok)
	require.Equal(t, uint32(0x50000042), body.GUID)
	require.Equal(t, "account", body.Account)
}

func TestClientSelectCharacterIgnoredOutsideCharacterSelection(t *testing.T) {
	sess := newFakeSession()
	c := newTestClient(sess)
	c.state = Connected

	c.handleCommand(SelectCharacterByIndexCmd{Index: 0})

	require.Equal(t, Connected, c.state)
	require.Empty(t, sess.sent)
}

func TestClientPlayerCreateMatchingPendingGUIDEntersWorld(t *testing.T) {
	c := newTestClient(newFakeSession())
	c.state = EnteringWorld
	c.pendingGUID = world.Guid(0x50000001)
	c.enterRetry.Arm(time.Now())

	playerCreate := messages.PlayerCreateData{
		Player: messages.PlayerDescriptionData{
			Object: messages.ObjectDescriptionData{
				GUID: 0x50000001,
				Name: "Hero",
			},
		},
	}
	payload := messages.EncodeMessage(messages.OpPlayerCreate, playerCreate)
	c.handleDecoded(messages.DecodeMessage(payload))

	require.Equal(t, InWorld, c.state)
	require.False(t, c.enterRetry.Active)
	require.NotNil(t, c.player)
	require.Equal(t, uint32(0x50000001), c.player.Entity.GUID)

	entity, ok := c.entities.Get(0x50000001)
	require.True(t, ok)
	require.Equal(t, "Hero", entity.Name)

	var sawEntered bool
	for _, ev := range drainEvents(c, 4) {
		if pe, ok := ev.(PlayerEnteredEvent); ok {
			sawEntered = true
			require.Equal(t, world.Guid(0x50000001), pe.GUID)
		}
	}
	require.True(t, sawEntered)
}

func TestClientObjectCreateForOtherGUIDSpawnsEntity(t *testing.T) {
	c := newTestClient(newFakeSession())
	c.state = InWorld

	objectCreate := messages.ObjectCreateData{
		Object: messages.ObjectDescriptionData{GUID: 0x80000010, Name: "Rabbit"},
	}
	payload := messages.EncodeMessage(messages.OpObjectCreate, objectCreate)
	c.handleDecoded(messages.DecodeMessage(payload))

	entity, ok := c.entities.Get(0x80000010)
	require.True(t, ok)
	require.Equal(t, "Rabbit", entity.Name)
	require.Nil(t, c.player)
}

func TestClientObjectDeleteRemovesEntity(t *testing.T) {
	c := newTestClient(newFakeSession())
	c.entities.Insert(world.Entity{GUID: 0x80000010, Name: "Rabbit"})

	del := messages.ObjectDeleteData{GUID: 0x80000010, Reason: 1}
	payload := messages.EncodeMessage(messages.OpObjectDelete, del)
	c.handleDecoded(messages.DecodeMessage(payload))

	_, ok := c.entities.Get(0x80000010)
	require.False(t, ok)
}

func TestClientCharacterErrorArmsEnterRetry(t *testing.T) {
	c := newTestClient(newFakeSession())
	c.state = EnteringWorld

	errData := messages.CharacterErrorData{ErrorCode: uint32(messages.ErrorEnterGameCharacterInWorld)}
	payload := messages.EncodeMessage(messages.OpCharacterError, errData)
	c.handleDecoded(messages.DecodeMessage(payload))

	require.True(t, c.enterRetry.Active)
}

func TestClientTalkCommandSendsGameAction(t *testing.T) {
	sess := newFakeSession()
	c := newTestClient(sess)

	c.handleCommand(TalkCmd{Text: "hello"})

	require.Len(t, sess.sent, 1)
	sent := sess.sent[0]
	require.Equal(t, uint32(messages.OpGameAction), binary.LittleEndian.Uint32(sent[:4]))

	offset := 4
	action, ok := messages.UnpackGameAction(sent, &offset)
	require.True(t, ok)
	talk, ok := action.Data.(messages.TalkData)
	require.True(t, ok)
	require.Equal(t, "hello", talk.Text)
}

func TestClientQuitSendsDisconnectAndHalts(t *testing.T) {
	sess := newFakeSession()
	c := newTestClient(sess)

	c.quit()

	require.True(t, sess.disconnectCalled)
	require.True(t, sess.haltCalled)
	require.Equal(t, Disconnected, c.state)
}

func TestClientMagicUpdateAndRemoveEnchantment(t *testing.T) {
	c := newTestClient(newFakeSession())
	c.player = world.NewPlayer(world.Entity{GUID: 0x50000001, Name: "Hero"})

	ench := world.Enchantment{SpellID: 42, Layer: 1, StatModType: world.StatModAttribute}
	c.applyEnchantment(0x50000001, ench)
	_, ok := c.player.Enchantments[ench.Key()]
	require.True(t, ok)

	c.removeEnchantment(0x50000001, 42, 1)
	_, ok = c.player.Enchantments[ench.Key()]
	require.False(t, ok)
}
