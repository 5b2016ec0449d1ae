package models

// Agent is one support agent. Agents are fully independent: no foreign keys
// in, and only tickets reference them.
type Agent struct {
	AgentID   string `gorm:"column:agent_id;primaryKey" json:"agent_id"`
	AgentName string `gorm:"column:agent_name;not null" json:"agent_name"`
	Team      string `gorm:"column:team" json:"team"`
	Shift     string `gorm:"column:shift" json:"shift"`
	State     string `gorm:"column:state" json:"state"`
	JoinDate  string `gorm:"column:join_date" json:"join_date"`
}

func (Agent) TableName() string { return "agents" }
