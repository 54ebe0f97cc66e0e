package ft8

import (
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/dsl"
	"github.com/aretw0/qso/pkg/protocol"
)

// Name is the protocol name of the pounce QSO.
const Name = "ft8-pounce"

// Phases of the pounce QSO.
const (
	PhaseListening   domain.Phase = "listen_for_activity"
	PhaseHeardCQ     domain.Phase = "hear_cq"
	PhaseRepliedToCQ domain.Phase = "reply_to_cq"
	PhaseGotReport   domain.Phase = "get_rst"
	PhaseSentReport  domain.Phase = "send_rst"
	PhaseGotClosing  domain.Phase = "get_bye"
	PhaseFinished    domain.Phase = "finished"
)

// Transitions of the pounce QSO.
const (
	HearCQ     domain.TransitionID = "t1_hear_a_cq"
	ReplyToCQ  domain.TransitionID = "t2_reply_to_a_cq"
	GetReport  domain.TransitionID = "t3_get_rst"
	SendReport domain.TransitionID = "t4_send_rst"
	GetBye     domain.TransitionID = "t5_get_bye"
	SendBye    domain.TransitionID = "t6_send_bye"
)

// Message patterns. Each one is matched from the start of the message.
const (
	patternCQ      = `[C][Q][ ]`
	patternReply   = `([A-Z0-9]{4,})[ ]+([A-Z0-9]{4,})[ ]+([A-Z0-9]{4,6})`
	patternReport  = `([A-Z0-9]{4,})[ ]+([A-Z0-9]){4,}[ ]+([0-9+\-]{2,3})`
	patternRoger   = `([A-Z0-9]{4,})[ ]+([A-Z0-9]){4,}[ ]+([A-Z0-9]{3,})`
	patternSignoff = `([A-Z0-9]{4,})[ ]+([A-Z0-9]){4,}[ ]+([A-Z0-9]{4,})`
)

// Builder returns the pounce QSO definition, ready to be extended or built.
func Builder() *dsl.Builder {
	b := dsl.New()

	b.Phase(PhaseListening).Initial().When(patternCQ, HearCQ, PhaseHeardCQ)
	b.Phase(PhaseHeardCQ).When(patternReply, ReplyToCQ, PhaseRepliedToCQ)
	b.Phase(PhaseRepliedToCQ).When(patternReport, GetReport, PhaseGotReport)
	b.Phase(PhaseGotReport).When(patternReport, SendReport, PhaseSentReport)
	b.Phase(PhaseSentReport).When(patternRoger, GetBye, PhaseGotClosing)
	b.Phase(PhaseGotClosing).When(patternSignoff, SendBye, PhaseFinished)
	b.Phase(PhaseFinished).Terminal()

	return b
}

// Pounce compiles the pounce QSO.
func Pounce() (*protocol.Protocol, error) {
	g, t, err := Builder().Build()
	if err != nil {
		return nil, err
	}
	return &protocol.Protocol{Name: Name, Graph: g, Table: t}, nil
}

// MustPounce is like Pounce but panics if the built-in table is inconsistent.
func MustPounce() *protocol.Protocol {
	p, err := Pounce()
	if err != nil {
		panic(err)
	}
	return p
}
