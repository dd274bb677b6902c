// Package domain — chat.go define os tipos usados pela rota POST /v1/chat.
//
// Essa rota é a "porta de entrada" do chat com IA. O fluxo completo:
//  1. Usuário manda a pergunta → o serviço recebe
//  2. O serviço usa Strategy Pattern para decidir o que fazer (context routing)
//  3. Perguntas numéricas (cotação, importação) são respondidas localmente
//     pelo motor de decisão — determinístico, sem custo de IA
//  4. O resto vai pro Agent Python (POST /v1/chat)
//  5. O serviço retorna SOMENTE a string answer pro chamador
package domain

// ============================================================
// Chat — Request/Response entre o chamador e o serviço
// ============================================================

// ChatRequest é o body que o chamador envia no POST /v1/chat.
// Por enquanto é só uma string — o prompt do usuário.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse é o que o serviço devolve pro chamador.
// Intent indica qual estratégia respondeu (útil para o frontend).
type ChatResponse struct {
	Answer string `json:"answer"`
	Intent string `json:"intent,omitempty"`
}

// ============================================================
// Chat — Request/Response entre o serviço e o Agent Python
// ============================================================

// ChatAgentRequest é o payload enviado pro Agent Python (POST /v1/chat).
// Deve casar com o contrato do endpoint Python:
//
//	curl -X POST /v1/chat -d '{"query": "..."}'
//
// Campos adicionais (user_id, context) são opcionais e servem para o
// agent ter contexto da conversa.
type ChatAgentRequest struct {
	// Query é o prompt do usuário — campo obrigatório
	Query string `json:"query"`

	// UserID identifica o usuário — usado pelo agent para personalizar a resposta
	UserID string `json:"user_id,omitempty"`

	// Context indica o assunto/domínio atual da conversa.
	// Exemplos: "payment", "affordability", "suggestions", "general"
	Context string `json:"context,omitempty"`
}

// ChatAgentResponse é a resposta que o Agent Python devolve.
type ChatAgentResponse struct {
	UserID     string   `json:"user_id"`
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources,omitempty"`
	TokensUsed int      `json:"tokens_used"`
	EstCostUSD float64  `json:"estimated_cost_usd"`
	Timestamp  string   `json:"timestamp"`
}

// ============================================================
// Strategy Context — define qual strategy processa a mensagem
// ============================================================

// ChatContext encapsula tudo que uma Strategy precisa para processar
// uma mensagem do chat. É montado pelo ChatService antes de delegar.
type ChatContext struct {
	// UserID do usuário (ou "anonymous")
	UserID string

	// Query é o prompt original do usuário
	Query string

	// DetectedIntent é a intenção detectada pelo roteador.
	// Exemplos: "quote", "import", "payment", "general"
	DetectedIntent string
}
