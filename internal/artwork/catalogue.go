package artwork

var catalogue = []Artwork{
	{
		Name:        "token_stream",
		Category:    Thinking,
		Title:       "Token Stream",
		Description: "A river of glowing tokens flowing from question to understanding.",
		Build:       buildTokenStream,
	},
	{
		Name:        "attention_matrix",
		Category:    Thinking,
		Title:       "Attention Matrix",
		Description: "A grid of attention weights with beams joining the strongest nodes.",
		Build:       buildAttentionMatrix,
	},
	{
		Name:        "context_window",
		Category:    Thinking,
		Title:       "Context Window",
		Description: "Nested frames of context, from immediate input to core understanding.",
		Build:       buildContextWindow,
	},
	{
		Name:        "thought_chains",
		Category:    Thinking,
		Title:       "Thought Chains",
		Description: "Chains of thought radiating from a central hub.",
		Build:       buildThoughtChains,
	},
	{
		Name:        "parallel_reasoning",
		Category:    Thinking,
		Title:       "Parallel Reasoning",
		Description: "Seven reasoning streams pulsing side by side.",
		Build:       buildParallelReasoning,
	},
	{
		Name:        "knowledge_graph",
		Category:    Memory,
		Title:       "Knowledge Graph",
		Description: "A hub of concepts with primary and secondary associations.",
		Build:       buildKnowledgeGraph,
	},
	{
		Name:        "process_threads",
		Category:    System,
		Title:       "Process Threads",
		Description: "Threads spiralling around a main process above a mirror floor.",
		Build:       buildProcessThreads,
	},
	{
		Name:        "network_packets",
		Category:    System,
		Title:       "Network Packets",
		Description: "Packets in flight across a hexagonal network.",
		Build:       buildNetworkPackets,
	},
	{
		Name:        "file_operations",
		Category:    System,
		Title:       "File Operations",
		Description: "Read, write, delete and create operations aimed at a block of files.",
		Build:       buildFileOperations,
	},
	{
		Name:        "introspection_spiral",
		Category:    Consciousness,
		Title:       "Introspection Spiral",
		Description: "An inward spiral of self-examination rising to a core insight.",
		Build:       buildIntrospectionSpiral,
	},
	{
		Name:        "neural_network",
		Category:    Legacy,
		Title:       "Neural Network",
		Description: "Layers of neurons joined by synapses.",
		Build:       buildNeuralNetwork,
	},
	{
		Name:        "data_flow",
		Category:    Legacy,
		Title:       "Data Flow",
		Description: "A five stage transformation pipeline.",
		Build:       buildDataFlow,
	},
	{
		Name:        "algorithm_crystal",
		Category:    Legacy,
		Title:       "Algorithm Crystal",
		Description: "An octahedral lattice around a glass core.",
		Build:       buildAlgorithmCrystal,
	},
	{
		Name:        "code_universe",
		Category:    Legacy,
		Title:       "Code Universe",
		Description: "A code star orbited by planets of functions, classes, variables and loops.",
		Build:       buildCodeUniverse,
	},
	{
		Name:        "system_architecture",
		Category:    Legacy,
		Title:       "System Architecture",
		Description: "Core, service, interface and data tiers joined by connection beams.",
		Build:       buildSystemArchitecture,
	},
}
