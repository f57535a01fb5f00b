package snapshot

// cursorScript is the in-page query behind the cursor-interactive
// detector. Eligibility filtering happens here in one atomic round-trip;
// scoring and containment dedup run on the returned candidates in Go.
func cursorScript() string {
	return `(opts) => {
		const NATIVE_TAGS = ['a', 'button', 'input', 'select', 'textarea', 'details', 'summary'];
		const INTERACTIVE_ROLES = [
			'button', 'link', 'textbox', 'checkbox', 'radio', 'combobox', 'listbox',
			'menuitem', 'menuitemcheckbox', 'menuitemradio', 'option', 'searchbox',
			'slider', 'spinbutton', 'switch', 'tab', 'treeitem'
		];
		const LABEL_MAX = 100;
		const PATH_SEGMENTS_MAX = 6;

		const scope = opts.root ? document.querySelector(opts.root) : document.body;
		if (!scope) return [];

		const attrSelector = (name, value) => '[' + name + '="' + value.replace(/"/g, '\\"') + '"]';

		const buildSelector = (el) => {
			if (el.id && document.querySelectorAll('#' + CSS.escape(el.id)).length === 1) {
				return '#' + CSS.escape(el.id);
			}
			const testId = el.getAttribute('data-testid');
			if (testId && document.querySelectorAll(attrSelector('data-testid', testId)).length === 1) {
				return attrSelector('data-testid', testId);
			}
			const segments = [];
			let current = el;
			let hops = 0;
			while (current && current.tagName && current !== scope.parentElement && hops < PATH_SEGMENTS_MAX) {
				let segment = current.tagName.toLowerCase();
				const className = typeof current.className === 'string' ? current.className : '';
				const firstClass = className.trim().split(/\s+/).filter(Boolean)[0];
				if (firstClass) {
					segment += '.' + CSS.escape(firstClass);
				}
				const parent = current.parentElement;
				if (parent) {
					const sameTag = Array.from(parent.children).filter(ch => ch.tagName === current.tagName);
					if (sameTag.length > 1) {
						segment += ':nth-of-type(' + (sameTag.indexOf(current) + 1) + ')';
					}
				}
				segments.unshift(segment);
				current = parent;
				hops++;
			}
			return segments.join(' > ');
		};

		const indexPath = (el) => {
			const path = [];
			let current = el;
			while (current && current.parentElement) {
				path.unshift(Array.prototype.indexOf.call(current.parentElement.children, current));
				current = current.parentElement;
			}
			return path;
		};

		const out = [];
		let order = 0;
		const all = scope.querySelectorAll('*');

		for (const el of all) {
			if (out.length >= opts.limit) break;

			const tag = el.tagName.toLowerCase();
			if (NATIVE_TAGS.includes(tag)) continue;

			const role = (el.getAttribute('role') || '').toLowerCase();
			if (INTERACTIVE_ROLES.includes(role)) continue;

			const rect = el.getBoundingClientRect();
			if (rect.width <= 0 || rect.height <= 0) continue;

			const style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden' || parseFloat(style.opacity) === 0) continue;

			const hasCursorPointer = style.cursor === 'pointer';
			const hasDirectCursorPointer = !!(el.style && el.style.cursor === 'pointer');
			const hasOnClick = el.hasAttribute('onclick') || typeof el.onclick === 'function';
			const tabAttr = el.getAttribute('tabindex');
			const hasTabIndex = tabAttr !== null && parseInt(tabAttr, 10) >= 0;

			if (!hasCursorPointer && !hasOnClick && !hasTabIndex) continue;

			const title = el.getAttribute('title');
			const ariaLabel = el.getAttribute('aria-label');
			let label = title || ariaLabel || (el.innerText || '').trim() || (el.textContent || '').trim();
			label = (label || '').replace(/\s+/g, ' ').trim();
			if (!label) continue;
			if (label.length > LABEL_MAX) {
				label = label.slice(0, LABEL_MAX);
			}

			const path = indexPath(el);

			out.push({
				selector: buildSelector(el),
				label: label,
				tag: tag,
				path: path.join('.'),
				hasOnClick: hasOnClick,
				hasCursorPointer: hasCursorPointer,
				hasDirectCursorPointer: hasDirectCursorPointer,
				hasTabIndex: hasTabIndex,
				hasTitle: !!title,
				hasAriaLabel: !!ariaLabel,
				depth: path.length,
				order: order++
			});
		}

		return out;
	}`
}
