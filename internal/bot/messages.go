package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot commands, without the leading slash
const (
	CommandHelp     = "queromassagem"
	CommandList     = "vermassagistas"
	CommandRegister = "soumassagista"
)

// Canned replies
const (
	HelpText = "📋 Lista de comandos:\n\n" +
		"/queromassagem – Lista de comandos\n" +
		"/vermassagistas – Ver lista completa\n" +
		"/soumassagista – Cadastrar meus dados"

	RegisterHelpText = "Vamos cadastrar você! Envie seus dados exatamente no formato:\n\n" +
		"Nome - ContatoTelegram - Telefone - Modalidades - AtendeDomicilio - LocalProprio - Bairros\n\n" +
		"Exemplo:\n" +
		"João Silva - @joaomassagem - 31999998888 - Relaxante, Tantra - Sim - Não - Funcionários, Savassi\n\n" +
		"Ou, uma informação por linha:\n\n" +
		"Nome: João Silva\n" +
		"ContatoTelegram: @joaomassagem\n" +
		"Telefone: 31999998888\n" +
		"Modalidades: Relaxante, Tantra\n" +
		"AtendeDomicilio: Sim\n" +
		"LocalProprio: Não\n" +
		"Bairros: Funcionários, Savassi"

	StoredText     = "✔️ Seus dados foram cadastrados com sucesso!"
	ListErrorText  = "Erro ao acessar a lista."
	StoreErrorText = "Erro ao salvar seus dados."

	defaultMemberName = "visitante"
)

// InvalidSubmissionText names the mandatory fields that were left empty
func InvalidSubmissionText(missing []string) string {
	return fmt.Sprintf("⚠️ Cadastro incompleto. Preencha os campos obrigatórios: %s.\n"+
		"Digite /soumassagista para ver o formato.", strings.Join(missing, ", "))
}

// WelcomeText greets a new group member. The result is Telegram Markdown.
func WelcomeText(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = defaultMemberName
	}

	return fmt.Sprintf("👋 Olá, *%s*!\n\n"+
		"Bem-vindo(a) ao grupo de troca de massagem!\n\n"+
		"Aqui você pode:\n\n"+
		"Receber o relaxamento que tanto proporciona aos seus clientes.\n"+
		"Encontrar alguém disposto a ser modelo para praticar em seus cursos.\n"+
		"Aprender e compartilhar técnicas e procedimentos de massoterapia.\n"+
		"Entre outras coisas!\n\n"+
		"Se precisar de ajuda, digite /queromassagem para ver os comandos disponíveis.\n\n"+
		"Fique à vontade! 😉", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, name))
}
