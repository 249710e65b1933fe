package orchestratornode

func Finalize(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, ErrNilState
	}

	return GraphOutput{
		RunID:       in.RunID,
		State:       in.State,
		Transcript:  in.Transcript,
		Iterations:  in.Iterations,
		Exhausted:   in.Exhausted,
		Persisted:   in.Persisted,
		Entry:       in.Entry,
		MemoryCount: in.MemoryCount,
	}, nil
}
