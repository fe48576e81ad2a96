package templates

// StaticPage is a fixed informational page
type StaticPage struct {
	Path  string
	Title string
	HTML  string
	// Assistant adds the question box below the content
	Assistant bool
}

// StaticPages lists the site's fixed pages by path
var StaticPages = []StaticPage{
	{
		Path:  "/sobre",
		Title: "Sobre",
		HTML: `<p>Esta calculadora ajuda trabalhadores e segurados a organizar seus atestados médicos,
visualizar o período total de afastamento e identificar sobreposições e intervalos sem cobertura.</p>
<p>Os cálculos são feitos a cada alteração, com base apenas nos dados informados na página.
Nenhum atestado é armazenado.</p>`,
	},
	{
		Path:  "/politica-de-privacidade",
		Title: "Política de Privacidade",
		HTML: `<p>Os dados dos atestados informados na calculadora não são armazenados: eles existem apenas
na página aberta no seu navegador e são descartados ao fechá-la.</p>
<p>Este site pode exibir anúncios e comentários de serviços de terceiros, que podem utilizar cookies
conforme suas próprias políticas.</p>
<p>Perguntas enviadas ao assistente são encaminhadas a um provedor de inteligência artificial para
gerar a resposta e não são guardadas por este site.</p>`,
	},
	{
		Path:  "/contato",
		Title: "Contato",
		HTML: `<p>Sugestões e correções são bem-vindas. Use a seção de comentários dos artigos para falar
conosco.</p>`,
	},
	{
		Path:      "/beneficio-inss",
		Title:     "Benefício por Incapacidade Temporária (INSS)",
		Assistant: true,
		HTML: `<p>Quando o afastamento do trabalho ultrapassa 15 dias consecutivos, os dias seguintes deixam
de ser pagos pelo empregador e passam a depender do Benefício por Incapacidade Temporária, antigo
auxílio-doença.</p>
<h2 class="text-xl font-semibold mt-6 mb-2">Prazo</h2>
<p>Para receber desde o início do afastamento, o requerimento deve ser feito em até 30 dias após o
término do período. Pedidos posteriores são pagos a partir da data do requerimento.</p>
<h2 class="text-xl font-semibold mt-6 mb-2">Documentos</h2>
<ul class="list-disc ml-6">
<li>Documento oficial com foto e CPF;</li>
<li>Atestados e laudos médicos com CID, data de início e tempo de afastamento;</li>
<li>Exames e receitas relacionados;</li>
<li>Carteira de trabalho ou comprovantes de contribuição.</li>
</ul>
<h2 class="text-xl font-semibold mt-6 mb-2">Como agendar</h2>
<p>Pelo site ou aplicativo Meu INSS, ou pelo telefone 135.</p>`,
	},
}
