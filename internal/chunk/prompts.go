package chunk

// analysisPrompts run after all content chunks have been acknowledged.
// Their order builds on itself: analysis, problem identification, draft
// assembly, then the final formatted proposal.
var analysisPrompts = []string{
	`RFP Analysis Prompt: Please thoroughly analyze the attached RFP document, including all amendments, Q&A responses, and related attachments. Identify and extract the following key information:

Customer's primary objectives and requirements

Evaluation criteria and their relative weightings

Submission deadlines and formatting requirements

Any unique or mandatory compliance requirements

Summarize your findings in a clear, concise report highlighting the most critical elements we must address to be fully responsive and compliant.`,

	`Customer Problem/Objective Identification Prompt: Based on your analysis of the RFP and any additional customer background information provided, identify the customer's top 3-5 problems, pain points, or strategic objectives that our solution must address to win. For each problem/objective:

Describe the current situation and its negative impacts on the customer

Highlight the urgency and importance of addressing it

Identify any specific metrics or success criteria the customer has defined

Suggest potential solution elements or approaches that could effectively tackle the problem

Present your findings in a prioritized list with supporting rationale for each item.`,

	`Full Proposal Draft Assembly Prompt: Please assemble the complete first draft of the proposal, integrating all AI-generated section content according to the approved outline structure. Ensure that:

All sections and subsections flow logically and persuasively, with clear transitions and cross-references as needed

All RFP requirements and evaluation criteria are fully addressed, with no gaps or redundancies

All win themes, differentiators, and proof points are consistently messaged and mutually reinforcing across sections

Continuity and consistency across all sections in terms of customer focus, tone, style, and reading level

Placeholders for graphics, tables, and callout boxes are appropriate and properly formatted

All required attachments, forms, and administrative elements are included and compliant

Please provide a detailed table of contents and cross-reference matrix to aid in navigation and compliance reviews. Clearly label any areas requiring further SME input or validation.`,

	`Please, according to all consolidated info from previous prompts, create the final proposal (With right format and titles, please write titles and subtitles between **)`,
}

// AnalysisPromptCount is the number of fixed prompts appended after the
// content chunks.
const AnalysisPromptCount = 4
