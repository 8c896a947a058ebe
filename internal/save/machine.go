package save

// Machine = Reduce + Pipeline
type Machine struct {
	version  Version
	pipeline Pipeline
}

func NewMachine(v Version) Machine {
	return Machine{version: v, pipeline: NewPipeline(ValidatorFor(v))}
}

func (m Machine) Version() Version {
	return m.version
}

// Transition 执行一次 Action 并重新推导所有派生字段
func (m Machine) Transition(s State, a Action) State {
	return m.pipeline.Apply(Reduce(s, a))
}

// Initial 返回经过 Pipeline 的初始状态
func (m Machine) Initial() State {
	return m.pipeline.Apply(InitialState())
}
