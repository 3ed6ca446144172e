package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPlay
	EventPush
	EventCenterScore
	EventExitScore
	EventTrapReveal
	EventScoreCancel
	EventSnared
	EventRedirect
	EventToMarket
	EventMarketTrash
	EventDraw
	EventMarketDraw
	EventDiscard
	EventHandOff
	EventReturnToHand
	EventRemoved
	EventEmbargo
	EventSwap
	EventGameEnd
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPlay:
		return "Play"
	case EventPush:
		return "Push"
	case EventCenterScore:
		return "CenterScore"
	case EventExitScore:
		return "ExitScore"
	case EventTrapReveal:
		return "TrapReveal"
	case EventScoreCancel:
		return "ScoreCancel"
	case EventSnared:
		return "Snared"
	case EventRedirect:
		return "Redirect"
	case EventToMarket:
		return "ToMarket"
	case EventMarketTrash:
		return "MarketTrash"
	case EventDraw:
		return "Draw"
	case EventMarketDraw:
		return "MarketDraw"
	case EventDiscard:
		return "Discard"
	case EventHandOff:
		return "HandOff"
	case EventReturnToHand:
		return "ReturnToHand"
	case EventRemoved:
		return "Removed"
	case EventEmbargo:
		return "Embargo"
	case EventSwap:
		return "Swap"
	case EventGameEnd:
		return "GameEnd"
	default:
		return "Unknown"
	}
}

// GameEvent is a single structured record in the ordered game event stream.
// Consumers may read the sequence but must not mutate it.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // 1-based turn counter when the event fired
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Points  int       // points credited (scoring events)
	Details string    // human-readable detail string
}
